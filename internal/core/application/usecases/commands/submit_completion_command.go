package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/pkg/guard"
)

var ErrSubmitCompletionCommandIsNotConstructed = errors.New(
	"SubmitCompletionCommand must be created via NewSubmitCompletionCommand constructor",
)

// SubmitCompletionCommand represents a technician's final submission of a
// job: the completed data-capture form for the order's template.
type SubmitCompletionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	data    template.Record
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewSubmitCompletionCommand creates a command to complete a work order with
// the given captured data.
func NewSubmitCompletionCommand(
	orderID kernel.UUID,
	data template.Record,
	a actor.Actor,
) (SubmitCompletionCommand, error) {
	cmd := SubmitCompletionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(a),
	); err != nil {
		return SubmitCompletionCommand{}, err
	}
	cmd.data = data.Clone()

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCompletionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCompletionCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c SubmitCompletionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Data returns the final captured-data record.
func (c SubmitCompletionCommand) Data() template.Record {
	return c.data.Clone()
}

// Actor returns the acting user.
func (c SubmitCompletionCommand) Actor() actor.Actor {
	return c.actor
}

func (c *SubmitCompletionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitCompletionCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
