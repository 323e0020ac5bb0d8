package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// SaveProgressCommandHandler handles mid-job captured-data saves.
// The record passes partial schema validation: type mismatches on present
// fields are rejected, missing required fields are tolerated until
// completion.
type SaveProgressCommandHandler struct {
	uowFactory UoWFactory
	binding    services.FormBinding
}

// NewSaveProgressCommandHandler creates a handler for progress saves.
func NewSaveProgressCommandHandler(uowFactory UoWFactory, binding services.FormBinding) SaveProgressCommandHandler {
	return SaveProgressCommandHandler{
		uowFactory: uowFactory,
		binding:    binding,
	}
}

// Handle processes the progress save.
// Loads the order and its template, binds the record (authorization plus
// partial validation), stores it on the aggregate and writes back guarded on
// the order still being in progress.
func (h SaveProgressCommandHandler) Handle(ctx context.Context, cmd SaveProgressCommand) error {
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

	tmpl, err := uow.TemplateRepository().Get(ctx, order.TemplateID())
	if err != nil {
		return err
	}

	data := cmd.Data()
	if err = h.binding.BindProgress(cmd.Actor(), order, tmpl, data); err != nil {
		return err
	}

	if err = order.SaveProgress(data); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, order, workorder.InProgress); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
