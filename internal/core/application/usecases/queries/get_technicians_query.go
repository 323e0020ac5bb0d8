package queries

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetTechniciansQueryIsNotConstructed = errors.New(
	"GetTechniciansQuery must be created via NewGetTechniciansQuery constructor",
)

// GetTechniciansQuery retrieves the technician roster for assignment
// pickers in the dispatcher UI.
type GetTechniciansQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTechniciansQuery creates a query to retrieve all technicians.
// This is a parameterless query.
func NewGetTechniciansQuery() GetTechniciansQuery {
	return GetTechniciansQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTechniciansQuery) Validate() error {
	return q.guard.Validate(ErrGetTechniciansQueryIsNotConstructed)
}

// GetTechniciansQueryResponse is one technician profile.
type GetTechniciansQueryResponse struct {
	ID          kernel.UUID
	DisplayName string
}
