package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the work order list for an actor's board.
// Dispatchers see every order; technicians see only orders assigned to them.
// An optional status filter narrows the result.
//
// Example:
//
//	query, _ := NewGetOrdersQuery(technician, workorder.InProgress)
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order board: %w", err)
//	}
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	actor actor.Actor

	// statusFilter narrows the board to one status; Unknown means no filter.
	statusFilter workorder.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for the actor's order board.
// Pass workorder.Unknown as statusFilter to list every status.
func NewGetOrdersQuery(a actor.Actor, statusFilter workorder.Status) (GetOrdersQuery, error) {
	query := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := a.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	query.actor = a

	if statusFilter != workorder.Unknown {
		if err := statusFilter.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		query.statusFilter = statusFilter
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the acting user.
func (q GetOrdersQuery) Actor() actor.Actor {
	return q.actor
}

// StatusFilter returns the requested status filter, or workorder.Unknown
// when the board shows every status.
func (q GetOrdersQuery) StatusFilter() workorder.Status {
	return q.statusFilter
}

// GetOrdersQueryResponse is one row of the order board: the order fields
// joined with the service type name and the assignee's display name.
type GetOrdersQueryResponse struct {
	ID              kernel.UUID
	TemplateID      kernel.UUID
	TemplateName    string
	Status          workorder.Status
	AssigneeID      *kernel.UUID
	AssigneeName    string
	CustomerName    string
	CustomerAddress string
	CapturedData    json.RawMessage
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
