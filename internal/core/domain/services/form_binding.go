package services

import (
	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
)

// FormBinding is a domain service combining the access policy with schema
// validation for captured-data writes. It is the single gate through which
// technician-entered data reaches an order: authorization first, then the
// record is reconciled against the order's template schema in the mode the
// operation requires.
type FormBinding struct {
	policy AccessPolicy
}

// NewFormBinding creates a new FormBinding instance.
func NewFormBinding(policy AccessPolicy) FormBinding {
	return FormBinding{policy: policy}
}

// BindProgress validates a progress save: the actor must be allowed to edit
// the order's captured data, and the record must pass partial schema
// validation (type checks on present fields; missing required fields are
// tolerated mid-job).
func (b FormBinding) BindProgress(
	a actor.Actor,
	order *workorder.WorkOrder,
	tmpl *template.ServiceTemplate,
	data template.Record,
) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}
	if err := b.policy.Authorize(a, order, "save progress", func(c Capabilities) bool {
		return c.CanEditCapturedData
	}); err != nil {
		return err
	}

	return tmpl.Schema().Validate(data, template.PartialValidation)
}

// BindCompletion validates a completion submission: the actor must be
// allowed to complete the order, and the record must pass complete schema
// validation with every required field present.
func (b FormBinding) BindCompletion(
	a actor.Actor,
	order *workorder.WorkOrder,
	tmpl *template.ServiceTemplate,
	data template.Record,
) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}
	if err := b.policy.Authorize(a, order, "submit completion", func(c Capabilities) bool {
		return c.CanSubmitCompletion
	}); err != nil {
		return err
	}

	return tmpl.Schema().Validate(data, template.CompleteValidation)
}
