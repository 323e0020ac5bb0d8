package commands

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Only dispatchers create orders; the referenced service template must exist
// in the catalog. New orders start in pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, templateID, "Dana Reeves", "12 Harbor Lane", nil, dispatcher)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and visible to technicians
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory spanning orders and the template catalog.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Verifies dispatcher authority and template existence, then persists the
// new pending order. A duplicate order ID is rejected by the store, which
// makes retried creates idempotent in effect.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsDispatcher() {
		return services.NewForbiddenError("create order", cmd.Actor().Role())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.TemplateRepository().Get(ctx, cmd.TemplateID()); err != nil {
		return err
	}

	order, err := workorder.NewWorkOrder(
		cmd.OrderID(),
		cmd.TemplateID(),
		cmd.CustomerName(),
		cmd.CustomerAddress(),
		cmd.AssigneeID(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
