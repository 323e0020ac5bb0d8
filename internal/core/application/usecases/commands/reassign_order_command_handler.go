package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// ReassignOrderCommandHandler handles dispatcher edits of open orders:
// reassigning the technician, forcing the status between pending and
// in_progress, or both in one edit.
//
// When the resulting state is in_progress, the single-active-job constraint
// is re-checked for the technician ending up with the order, inside the same
// transaction as the write.
type ReassignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	constraint services.AssignmentConstraint
}

// NewReassignOrderCommandHandler creates a handler for dispatcher edits.
func NewReassignOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.AccessPolicy,
	constraint services.AssignmentConstraint,
) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		constraint: constraint,
	}
}

// Handle processes the dispatcher edit.
// Authorizes each requested change separately, re-checks the
// single-active-job rule and writes with a status guard.
//
// Change order matters when both are requested: forcing into in_progress
// needs the assignee set first, while demoting to pending must happen before
// the assignee can be cleared. Demotions therefore apply status first,
// everything else applies the assignee first.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) error {
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
	loadedStatus := order.Status()

	applyAssignee := func() error {
		if err := h.policy.Authorize(cmd.Actor(), order, "edit assignee", func(c services.Capabilities) bool {
			return c.CanEditAssignee
		}); err != nil {
			return err
		}
		return order.Reassign(cmd.AssigneeID())
	}

	applyStatus := func() error {
		if err := h.policy.Authorize(cmd.Actor(), order, "edit status", func(c services.Capabilities) bool {
			return c.CanEditStatus
		}); err != nil {
			return err
		}
		return order.ForceStatus(cmd.ForcedStatus())
	}

	statusFirst := cmd.ChangesStatus() && cmd.ForcedStatus() == workorder.Pending

	if statusFirst {
		if err = applyStatus(); err != nil {
			return err
		}
	}
	if cmd.ChangesAssignee() {
		if err = applyAssignee(); err != nil {
			return err
		}
	}
	if cmd.ChangesStatus() && !statusFirst {
		if err = applyStatus(); err != nil {
			return err
		}
	}

	if order.Status() == workorder.InProgress && order.Assignee() != nil {
		technicianID := *order.Assignee()
		activeOrders, activeErr := orderRepo.GetAllInProgressByAssignee(ctx, technicianID)
		if activeErr != nil {
			return activeErr
		}
		if err = h.constraint.Check(technicianID, activeOrders, order.ID()); err != nil {
			return err
		}
	}

	if err = orderRepo.UpdateIfStatus(ctx, order, loadedStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
