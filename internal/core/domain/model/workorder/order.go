package workorder

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a WorkOrder instance was not
	// created through the NewWorkOrder or RestoreWorkOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

	// ErrAssignedToAnotherTechnician is returned when a technician tries to
	// claim an order that is already assigned to somebody else.
	ErrAssignedToAnotherTechnician = errors.New("order is assigned to another technician")

	// ErrAssigneeIsRequired is returned when an order would enter InProgress
	// without an assignee. An in-progress order always has exactly one
	// technician working it.
	ErrAssigneeIsRequired = errors.New("an in-progress order must have an assignee")

	// ErrCompletedOrderIsImmutable is returned on any attempt to modify or
	// delete a completed order. Completed orders are the historical record of
	// work performed. Every such attempt is an invalid transition out of the
	// terminal status, so the error wraps ErrInvalidTransition.
	ErrCompletedOrderIsImmutable = fmt.Errorf(
		"completed order cannot be modified or deleted: %w", ErrInvalidTransition,
	)
)

// WorkOrder represents a field-service job in the system. It is the aggregate
// root that manages the job lifecycle from creation through claiming to
// completion.
//
// WorkOrder follows these invariants:
//   - Must have a valid unique identifier and service template reference
//   - Must carry non-empty customer name and address
//   - An InProgress order always has an assignee
//   - A Completed order always has a completion timestamp, and only a
//     completed order has one
//   - Captured data is replaced as a whole, never patched field by field
//   - Can only be created through NewWorkOrder or RestoreWorkOrder
type WorkOrder struct {
	id         kernel.UUID
	templateID kernel.UUID

	// assigneeID is the working technician's ID (nil while unassigned)
	assigneeID *kernel.UUID

	customerName    string
	customerAddress string

	status Status

	// capturedData is the technician-entered document for the template's
	// schema. Nil until the first progress save.
	capturedData template.Record

	createdAt   time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewWorkOrder creates a new WorkOrder in Pending status with validation.
// This is the only way to create a fresh order, ensuring all business
// invariants hold from the start.
//
// An optional assignee may be provided: dispatchers can pre-assign a
// technician at creation time, in which case the order still starts Pending
// and waits for that technician to claim it.
func NewWorkOrder(
	id kernel.UUID,
	templateID kernel.UUID,
	customerName string,
	customerAddress string,
	assigneeID *kernel.UUID,
	createdAt time.Time,
) (*WorkOrder, error) {
	order := &WorkOrder{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTemplateID(templateID),
		order.setCustomerName(customerName),
		order.setCustomerAddress(customerAddress),
		order.setAssignee(assigneeID),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreWorkOrder rebuilds a WorkOrder from persisted state, re-validating
// the cross-field invariants the database cannot express: an in-progress
// order must have an assignee, and a completion timestamp must be present
// exactly when the order is completed.
func RestoreWorkOrder(
	id kernel.UUID,
	templateID kernel.UUID,
	customerName string,
	customerAddress string,
	assigneeID *kernel.UUID,
	status Status,
	capturedData template.Record,
	createdAt time.Time,
	completedAt *time.Time,
) (*WorkOrder, error) {
	order := &WorkOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTemplateID(templateID),
		order.setCustomerName(customerName),
		order.setCustomerAddress(customerAddress),
		order.setAssignee(assigneeID),
		order.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = status
	order.capturedData = capturedData.Clone()

	if status == InProgress && order.assigneeID == nil {
		return nil, ErrAssigneeIsRequired
	}
	if (status == Completed) != (completedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"completedAt",
			errors.New("completion timestamp must be set exactly when the order is completed"),
		)
	}
	if completedAt != nil {
		at := *completedAt
		order.completedAt = &at
	}

	return order, nil
}

// Validate ensures the WorkOrder instance was properly constructed through
// one of the factory methods.
func (o *WorkOrder) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two work orders by their unique identifiers.
func (o *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *WorkOrder) ID() kernel.UUID {
	return o.id
}

// TemplateID returns the service template this order was created from.
func (o *WorkOrder) TemplateID() kernel.UUID {
	return o.templateID
}

// CustomerName returns the customer's name.
func (o *WorkOrder) CustomerName() string {
	return o.customerName
}

// CustomerAddress returns the job site address.
func (o *WorkOrder) CustomerAddress() string {
	return o.customerAddress
}

// Status returns the current lifecycle status.
func (o *WorkOrder) Status() Status {
	return o.status
}

// Assignee returns the working technician's ID, or nil while unassigned.
func (o *WorkOrder) Assignee() *kernel.UUID {
	return o.assigneeID
}

// CapturedData returns a copy of the technician-entered data document.
// Nil until the first progress save.
func (o *WorkOrder) CapturedData() template.Record {
	return o.capturedData.Clone()
}

// CreatedAt returns the order creation time.
func (o *WorkOrder) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the completion time, or nil while the order is open.
func (o *WorkOrder) CompletedAt() *time.Time {
	return o.completedAt
}

// IsOwnedBy reports whether the order is assigned to the given technician.
func (o *WorkOrder) IsOwnedBy(technicianID kernel.UUID) bool {
	return o.assigneeID != nil && o.assigneeID.IsEqual(technicianID)
}

// Claim moves the order into InProgress on behalf of a technician.
//
// Business rules:
//   - The order must be Pending
//   - An unassigned order is self-assigned to the claiming technician
//   - An order pre-assigned to another technician cannot be claimed
//
// After a successful claim the order's status is InProgress and Assignee()
// returns the claiming technician's ID.
func (o *WorkOrder) Claim(technicianID kernel.UUID) error {
	if err := technicianID.Validate(); err != nil {
		return err
	}

	if o.assigneeID != nil && !o.assigneeID.IsEqual(technicianID) {
		return ErrAssignedToAnotherTechnician
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assigneeID = &technicianID
	return nil
}

// SaveProgress replaces the captured data document while the job is being
// executed. Only InProgress orders accept progress saves; the order's status
// and completion timestamp are untouched.
//
// The data is expected to have passed partial schema validation already; the
// aggregate only guards the lifecycle.
func (o *WorkOrder) SaveProgress(data template.Record) error {
	if o.status != InProgress {
		return NewInvalidTransitionError(o.status, InProgress)
	}

	o.capturedData = data.Clone()
	return nil
}

// Complete finishes the job: in one step the status becomes Completed, the
// final captured data replaces any saved progress, and the completion
// timestamp is recorded. The three never change independently.
//
// Business rules:
//   - The order must be InProgress
//   - The order must have an assignee
//
// The data is expected to have passed complete schema validation already.
func (o *WorkOrder) Complete(data template.Record, at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("completedAt")
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	if o.assigneeID == nil {
		return ErrAssigneeIsRequired
	}

	o.status = newStatus
	o.capturedData = data.Clone()
	completedAt := at
	o.completedAt = &completedAt
	return nil
}

// Reassign changes the assignee on dispatcher authority.
//
// Business rules:
//   - Completed orders are immutable
//   - An InProgress order cannot be left without an assignee
//
// Passing nil while the order is Pending clears a pre-assignment.
func (o *WorkOrder) Reassign(assigneeID *kernel.UUID) error {
	if o.status == Completed {
		return ErrCompletedOrderIsImmutable
	}
	if o.status == InProgress && assigneeID == nil {
		return ErrAssigneeIsRequired
	}

	return o.setAssignee(assigneeID)
}

// ForceStatus moves the order between Pending and InProgress on dispatcher
// authority, bypassing the claim flow. Transitions into or out of Completed
// are never allowed, even for dispatchers.
//
// Forcing into InProgress requires an assignee, since an in-progress order
// always has one.
func (o *WorkOrder) ForceStatus(target Status) error {
	newStatus, err := o.status.ForceTo(target)
	if err != nil {
		return err
	}
	if newStatus == InProgress && o.assigneeID == nil {
		return ErrAssigneeIsRequired
	}

	o.status = newStatus
	return nil
}

// EnsureDeletable reports whether the order may be removed. Completed orders
// are the record of performed work and are never deleted.
func (o *WorkOrder) EnsureDeletable() error {
	if o.status == Completed {
		return ErrCompletedOrderIsImmutable
	}
	return nil
}

func (o *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WorkOrder) setTemplateID(templateID kernel.UUID) error {
	if err := templateID.Validate(); err != nil {
		return err
	}
	o.templateID = templateID
	return nil
}

func (o *WorkOrder) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *WorkOrder) setCustomerAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customerAddress")
	}
	o.customerAddress = address
	return nil
}

func (o *WorkOrder) setAssignee(assigneeID *kernel.UUID) error {
	if assigneeID == nil {
		o.assigneeID = nil
		return nil
	}
	if err := assigneeID.Validate(); err != nil {
		return err
	}
	id := *assigneeID
	o.assigneeID = &id
	return nil
}

func (o *WorkOrder) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
