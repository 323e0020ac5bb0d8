package services

import (
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/workorder"
)

// ErrForbidden is the sentinel wrapped by every ForbiddenError.
var ErrForbidden = errors.New("actor is not allowed to perform this operation")

// Capabilities is the per-actor, per-order answer of the access policy: what
// the given actor may do with the given order right now. Every command
// handler consults the relevant flag before touching the aggregate, and the
// read side ships the flags to the UI so it can hide what the actor cannot
// do.
type Capabilities struct {
	CanView             bool
	CanClaim            bool
	CanEditStatus       bool
	CanEditAssignee     bool
	CanEditCapturedData bool
	CanSubmitCompletion bool
	CanDelete           bool
}

// AccessPolicy is a domain service deciding what each role may do with a
// work order.
//
// Business rules:
//   - Dispatchers see every order and may edit status and assignee, and
//     delete orders. They never execute jobs: captured data entry and
//     completion are technician work.
//   - Technicians see only orders assigned to them, plus unassigned pending
//     orders they could claim. They work the job: save progress and submit
//     completion on their own in-progress orders.
//
// Completed-order immutability is not an authorization rule: the policy
// answers for the role, and the aggregate rejects mutations of a completed
// order as an invalid transition.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CapabilitiesFor computes the capability set for an actor against an order.
// Both must be constructed aggregates.
func (p AccessPolicy) CapabilitiesFor(a actor.Actor, order *workorder.WorkOrder) (Capabilities, error) {
	if err := a.Validate(); err != nil {
		return Capabilities{}, err
	}
	if err := order.Validate(); err != nil {
		return Capabilities{}, err
	}

	if a.IsDispatcher() {
		return Capabilities{
			CanView:         true,
			CanEditStatus:   true,
			CanEditAssignee: true,
			CanDelete:       true,
		}, nil
	}

	owned := order.IsOwnedBy(a.ID())
	claimable := order.Status() == workorder.Pending && (owned || order.Assignee() == nil)
	working := owned && order.Status() == workorder.InProgress

	return Capabilities{
		CanView:             owned || claimable,
		CanClaim:            claimable,
		CanEditCapturedData: working,
		CanSubmitCompletion: working,
	}, nil
}

// Authorize checks a single capability and converts a refusal into a
// ForbiddenError naming the operation.
func (p AccessPolicy) Authorize(a actor.Actor, order *workorder.WorkOrder, operation string, allowed func(Capabilities) bool) error {
	caps, err := p.CapabilitiesFor(a, order)
	if err != nil {
		return err
	}
	if !allowed(caps) {
		return NewForbiddenError(operation, a.Role())
	}
	return nil
}

// ForbiddenError reports an operation the access policy refused for the
// acting role.
type ForbiddenError struct {
	Operation string
	Role      actor.Role
}

// NewForbiddenError creates a ForbiddenError for the given operation and
// role.
func NewForbiddenError(operation string, role actor.Role) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Role: role}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Role, e.Operation)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
