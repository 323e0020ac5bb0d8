package services

import (
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
)

// ErrActiveJobConflict is the sentinel wrapped by every ActiveJobConflictError.
var ErrActiveJobConflict = errors.New("technician already has an active job")

// AssignmentConstraint is a domain service enforcing the single-active-job
// rule: a technician works at most one in-progress order at a time.
//
// The service is a pure check over orders the caller has already loaded; the
// command handlers run it inside the same transaction that performs the
// claim or forced transition, so two concurrent claims cannot both pass.
type AssignmentConstraint struct{}

// NewAssignmentConstraint creates a new AssignmentConstraint instance.
func NewAssignmentConstraint() AssignmentConstraint {
	return AssignmentConstraint{}
}

// Check verifies the technician would not hold two in-progress orders at
// once. activeOrders is the technician's current in-progress set; excludeID
// names the order about to transition, so re-checking an order against
// itself never conflicts.
//
// Returns an ActiveJobConflictError naming the conflicting order, or nil
// when the technician is free.
func (c AssignmentConstraint) Check(
	technicianID kernel.UUID,
	activeOrders []*workorder.WorkOrder,
	excludeID kernel.UUID,
) error {
	if err := technicianID.Validate(); err != nil {
		return err
	}

	for _, order := range activeOrders {
		if err := order.Validate(); err != nil {
			return err
		}
		if order.ID().IsEqual(excludeID) {
			continue
		}
		if order.Status() == workorder.InProgress && order.IsOwnedBy(technicianID) {
			return NewActiveJobConflictError(technicianID, order.ID())
		}
	}

	return nil
}

// ActiveJobConflictError reports a claim or forced transition that would
// give a technician a second simultaneous in-progress order.
type ActiveJobConflictError struct {
	TechnicianID       kernel.UUID
	ConflictingOrderID kernel.UUID
}

// NewActiveJobConflictError creates an ActiveJobConflictError for the given
// technician and the order already holding them busy.
func NewActiveJobConflictError(technicianID, conflictingOrderID kernel.UUID) *ActiveJobConflictError {
	return &ActiveJobConflictError{
		TechnicianID:       technicianID,
		ConflictingOrderID: conflictingOrderID,
	}
}

func (e *ActiveJobConflictError) Error() string {
	return fmt.Sprintf(
		"%s: technician %s is working order %s",
		ErrActiveJobConflict, e.TechnicianID, e.ConflictingOrderID,
	)
}

func (e *ActiveJobConflictError) Unwrap() error {
	return ErrActiveJobConflict
}
