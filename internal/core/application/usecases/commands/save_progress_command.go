package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/pkg/guard"
)

var ErrSaveProgressCommandIsNotConstructed = errors.New(
	"SaveProgressCommand must be created via NewSaveProgressCommand constructor",
)

// SaveProgressCommand represents a technician's mid-job save of captured
// data. The record replaces any previously saved progress wholesale.
type SaveProgressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	data    template.Record
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewSaveProgressCommand creates a command to save in-progress captured
// data. An empty record is allowed: it clears earlier progress.
func NewSaveProgressCommand(
	orderID kernel.UUID,
	data template.Record,
	a actor.Actor,
) (SaveProgressCommand, error) {
	cmd := SaveProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(a),
	); err != nil {
		return SaveProgressCommand{}, err
	}
	cmd.data = data.Clone()

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveProgressCommand) Validate() error {
	return c.guard.Validate(ErrSaveProgressCommandIsNotConstructed)
}

// OrderID returns the order being worked.
func (c SaveProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Data returns the captured-data record to save.
func (c SaveProgressCommand) Data() template.Record {
	return c.data.Clone()
}

// Actor returns the acting user.
func (c SaveProgressCommand) Actor() actor.Actor {
	return c.actor
}

func (c *SaveProgressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SaveProgressCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
