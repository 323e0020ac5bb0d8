package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
)

// TemplateRepository defines the read contract for the service template
// catalog. Templates are administered outside this core, so the port has no
// write side.
type TemplateRepository interface {
	// Get retrieves a template by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*template.ServiceTemplate, error)

	// GetAll retrieves the whole catalog, newest first.
	GetAll(ctx context.Context) ([]*template.ServiceTemplate, error)
}
