package queries

import (
	"encoding/json"
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetTemplatesQueryIsNotConstructed = errors.New(
	"GetTemplatesQuery must be created via NewGetTemplatesQuery constructor",
)

// GetTemplatesQuery retrieves the service template catalog for the order
// creation flow: names for the picker, schema and presentation hints for
// rendering the data-capture form.
type GetTemplatesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTemplatesQuery creates a query to retrieve the template catalog.
// This is a parameterless query.
func NewGetTemplatesQuery() GetTemplatesQuery {
	return GetTemplatesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTemplatesQuery) Validate() error {
	return q.guard.Validate(ErrGetTemplatesQueryIsNotConstructed)
}

// GetTemplatesQueryResponse is one catalog entry.
type GetTemplatesQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Description       string
	SchemaDocument    json.RawMessage
	PresentationHints json.RawMessage
}
