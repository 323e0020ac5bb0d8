package commands

import (
	"context"

	"fieldservice/internal/core/domain/services"
)

// DeleteOrderCommandHandler handles removal of open orders. Only dispatchers
// delete, and completed orders are never deleted: they are the record of
// work performed.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, policy services.AccessPolicy) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the deletion.
// Loads the order, authorizes the delete, re-checks deletability on the
// aggregate and removes it within the transaction.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	order, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(cmd.Actor(), order, "delete order", func(c services.Capabilities) bool {
		return c.CanDelete
	}); err != nil {
		return err
	}

	if err = order.EnsureDeletable(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, order.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
