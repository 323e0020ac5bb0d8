package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// ClaimOrderCommandHandler orchestrates the claim flow: capability check,
// single-active-job constraint, and the pending → in_progress transition.
//
// The constraint read and the status-guarded write run inside one
// transaction, so two technicians racing for the same order, or one
// technician racing for two orders, cannot both win.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, policy, constraint)
//	cmd, _ := NewClaimOrderCommand(orderID, technician)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrActiveJobConflict):
//	    // technician already has a job in progress
//	case errors.Is(err, ports.ErrConcurrentUpdate):
//	    // somebody else claimed first
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	constraint services.AssignmentConstraint
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	constraint services.AssignmentConstraint,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		constraint: constraint,
	}
}

// Handle processes the claim command.
// Loads the order, authorizes the claim, verifies the technician has no
// other in-progress order, performs the transition and writes it back with
// a status guard against concurrent claimers.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if err = h.policy.Authorize(cmd.Actor(), order, "claim order", func(c services.Capabilities) bool {
		return c.CanClaim
	}); err != nil {
		return err
	}

	technicianID := cmd.Actor().ID()
	activeOrders, err := orderRepo.GetAllInProgressByAssignee(ctx, technicianID)
	if err != nil {
		return err
	}
	if err = h.constraint.Check(technicianID, activeOrders, order.ID()); err != nil {
		return err
	}

	if err = order.Claim(technicianID); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, order, workorder.Pending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
