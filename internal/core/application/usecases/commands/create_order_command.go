package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new work order.
// Encapsulates the service template reference, the customer details and an
// optional technician pre-assignment.
//
// The order ID is supplied by the caller, not generated here: retrying a
// create with the same ID is rejected by the store instead of producing a
// duplicate order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, templateID, "Dana Reeves", "12 Harbor Lane", nil, dispatcher)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	templateID      kernel.UUID
	customerName    string
	customerAddress string
	assigneeID      *kernel.UUID
	actor           actor.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new work order.
// Validates identifiers, customer details, the optional assignee and the
// acting user. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	templateID kernel.UUID,
	customerName string,
	customerAddress string,
	assigneeID *kernel.UUID,
	a actor.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTemplateID(templateID),
		cmd.setCustomerName(customerName),
		cmd.setCustomerAddress(customerAddress),
		cmd.setAssigneeID(assigneeID),
		cmd.setActor(a),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the caller-supplied identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TemplateID returns the service template the order is created from.
func (c CreateOrderCommand) TemplateID() kernel.UUID {
	return c.templateID
}

// CustomerName returns the customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerAddress returns the job site address.
func (c CreateOrderCommand) CustomerAddress() string {
	return c.customerAddress
}

// AssigneeID returns the optional technician pre-assignment.
func (c CreateOrderCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

// Actor returns the acting user.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTemplateID(templateID kernel.UUID) error {
	if err := templateID.Validate(); err != nil {
		return err
	}

	c.templateID = templateID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setCustomerAddress(customerAddress string) error {
	if customerAddress == "" {
		return errs.NewValueIsRequiredError("customerAddress")
	}

	c.customerAddress = customerAddress
	return nil
}

func (c *CreateOrderCommand) setAssigneeID(assigneeID *kernel.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if err := assigneeID.Validate(); err != nil {
		return err
	}

	id := *assigneeID
	c.assigneeID = &id
	return nil
}

func (c *CreateOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}
