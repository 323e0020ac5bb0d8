package commands

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
)

// SubmitCompletionCommandHandler handles the final step of a job: the
// captured data passes complete schema validation, and the order's status,
// data and completion timestamp change together in one status-guarded write.
//
// Example:
//
//	handler := NewSubmitCompletionCommandHandler(uowFactory, binding)
//	cmd, _ := NewSubmitCompletionCommand(orderID, formData, technician)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, template.ErrSchemaValidation) {
//	    // required fields missing or types wrong; nothing was written
//	}
type SubmitCompletionCommandHandler struct {
	uowFactory UoWFactory
	binding    services.FormBinding
}

// NewSubmitCompletionCommandHandler creates a handler for completion
// submissions.
func NewSubmitCompletionCommandHandler(
	uowFactory UoWFactory,
	binding services.FormBinding,
) SubmitCompletionCommandHandler {
	return SubmitCompletionCommandHandler{
		uowFactory: uowFactory,
		binding:    binding,
	}
}

// Handle processes the completion submission.
// Loads the order and its template, binds the record (authorization plus
// complete-mode validation), completes the aggregate and writes back guarded
// on the order still being in progress. A failed validation leaves the order
// untouched and in progress.
func (h SubmitCompletionCommandHandler) Handle(ctx context.Context, cmd SubmitCompletionCommand) error {
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
	if err = h.binding.BindCompletion(cmd.Actor(), order, tmpl, data); err != nil {
		return err
	}

	if err = order.Complete(data, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, order, workorder.InProgress); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
