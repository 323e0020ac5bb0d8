package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrReassignOrderCommandIsNotConstructed = errors.New(
		"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
	)
	// ErrNothingToChange is returned when a reassign command carries neither a
	// new assignee nor a forced status.
	ErrNothingToChange = errors.New("reassign command must change the assignee or the status")
)

// ReassignOrderCommand represents a dispatcher's administrative edit of an
// open order: a new assignee, a forced status, or both.
//
// The two changes are optional independently. SetAssignee distinguishes
// "assign to nobody" (clear a pre-assignment) from "leave the assignee
// alone", which a plain *UUID field cannot express.
type ReassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   actor.Actor

	setAssignee bool
	assigneeID  *kernel.UUID

	forcedStatus workorder.Status

	guard guard.ConstructorGuard
}

// ReassignOrderChanges describes what a reassign command should touch.
// Zero-value fields mean "leave unchanged".
type ReassignOrderChanges struct {
	// SetAssignee enables the assignee change; AssigneeID nil then clears it.
	SetAssignee bool
	AssigneeID  *kernel.UUID

	// ForcedStatus moves the order between pending and in_progress when not
	// Unknown.
	ForcedStatus workorder.Status
}

// NewReassignOrderCommand creates a command for a dispatcher edit of an open
// order. At least one change must be requested.
func NewReassignOrderCommand(
	orderID kernel.UUID,
	changes ReassignOrderChanges,
	a actor.Actor,
) (ReassignOrderCommand, error) {
	cmd := ReassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setChanges(changes),
		cmd.setActor(a),
	); err != nil {
		return ReassignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

// OrderID returns the order being edited.
func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c ReassignOrderCommand) Actor() actor.Actor {
	return c.actor
}

// ChangesAssignee reports whether the assignee should be touched.
func (c ReassignOrderCommand) ChangesAssignee() bool {
	return c.setAssignee
}

// AssigneeID returns the new assignee, or nil to clear a pre-assignment.
// Only meaningful when ChangesAssignee is true.
func (c ReassignOrderCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

// ChangesStatus reports whether a forced status transition was requested.
func (c ReassignOrderCommand) ChangesStatus() bool {
	return c.forcedStatus != workorder.Unknown
}

// ForcedStatus returns the requested target status.
// Only meaningful when ChangesStatus is true.
func (c ReassignOrderCommand) ForcedStatus() workorder.Status {
	return c.forcedStatus
}

func (c *ReassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReassignOrderCommand) setChanges(changes ReassignOrderChanges) error {
	if !changes.SetAssignee && changes.ForcedStatus == workorder.Unknown {
		return ErrNothingToChange
	}

	if changes.SetAssignee && changes.AssigneeID != nil {
		if err := changes.AssigneeID.Validate(); err != nil {
			return err
		}
		id := *changes.AssigneeID
		c.assigneeID = &id
	}
	c.setAssignee = changes.SetAssignee

	if changes.ForcedStatus != workorder.Unknown {
		if err := changes.ForcedStatus.Validate(); err != nil {
			return err
		}
		c.forcedStatus = changes.ForcedStatus
	}

	return nil
}

func (c *ReassignOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
