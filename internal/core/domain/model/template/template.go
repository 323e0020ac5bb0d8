package template

import (
	"encoding/json"
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	// ErrTemplateIsNotConstructed is returned when a ServiceTemplate instance
	// was not created through the NewServiceTemplate constructor.
	ErrTemplateIsNotConstructed = errors.New("ServiceTemplate must be created via NewServiceTemplate constructor")
	// ErrNameIsRequired is returned when attempting to create a template
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// ServiceTemplate is the read-only catalog entry for a service type: a name,
// the schema describing what data must be captured to complete an order of
// this type, and opaque presentation hints the UI layer may use to lay out
// the form. Templates are administered outside this core and are immutable
// once a work order references them.
type ServiceTemplate struct {
	id          kernel.UUID
	name        string
	description string
	schema      Schema
	// presentationHints is the stored ui document. Never validated and never
	// consulted by the domain; passed through to the presentation layer.
	presentationHints json.RawMessage
	createdAt         time.Time

	guard guard.ConstructorGuard
}

// NewServiceTemplate creates a template with a parsed, structurally valid
// schema. Also used when restoring from persistence, since templates carry no
// mutable state to replay.
func NewServiceTemplate(
	id kernel.UUID,
	name string,
	description string,
	schema Schema,
	presentationHints json.RawMessage,
	createdAt time.Time,
) (*ServiceTemplate, error) {
	tmpl := &ServiceTemplate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tmpl.setID(id),
		tmpl.setName(name),
		tmpl.setSchema(schema),
		tmpl.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	tmpl.description = description
	tmpl.presentationHints = presentationHints
	return tmpl, nil
}

// Validate ensures the template was created through the constructor.
func (t *ServiceTemplate) Validate() error {
	if t == nil {
		return ErrTemplateIsNotConstructed
	}
	return t.guard.Validate(ErrTemplateIsNotConstructed)
}

// IsEqual compares two templates by identifier.
func (t *ServiceTemplate) IsEqual(other *ServiceTemplate) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the template's unique identifier.
func (t *ServiceTemplate) ID() kernel.UUID {
	return t.id
}

// Name returns the human-readable service type name.
func (t *ServiceTemplate) Name() string {
	return t.name
}

// Description returns the optional catalog description.
func (t *ServiceTemplate) Description() string {
	return t.description
}

// Schema returns the data-capture schema for this service type.
func (t *ServiceTemplate) Schema() Schema {
	return t.schema
}

// PresentationHints returns the opaque ui document, or nil when absent.
func (t *ServiceTemplate) PresentationHints() json.RawMessage {
	return t.presentationHints
}

// CreatedAt returns the catalog creation time.
func (t *ServiceTemplate) CreatedAt() time.Time {
	return t.createdAt
}

func (t *ServiceTemplate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *ServiceTemplate) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	t.name = name
	return nil
}

func (t *ServiceTemplate) setSchema(schema Schema) error {
	if schema.Type == "" {
		return errs.NewValueIsRequiredError("schema")
	}
	if err := schema.Type.Validate(); err != nil {
		return err
	}
	t.schema = schema
	return nil
}

func (t *ServiceTemplate) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	t.createdAt = createdAt
	return nil
}
