package queries

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetStaleOrdersQueryIsNotConstructed = errors.New(
	"GetStaleOrdersQuery must be created via NewGetStaleOrdersQuery constructor",
)

// GetStaleOrdersQuery retrieves in-progress orders that started before the
// given cutoff. Internal query for the dispatch report job; it carries no
// actor because it never crosses the API boundary.
type GetStaleOrdersQuery struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleOrdersQuery creates a query for in-progress orders created
// before cutoff.
func NewGetStaleOrdersQuery(cutoff time.Time) (GetStaleOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStaleOrdersQuery{}, errors.New("cutoff time is required")
	}

	return GetStaleOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleOrdersQueryIsNotConstructed)
}

// Cutoff returns the staleness boundary.
func (q GetStaleOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStaleOrdersQueryResponse is one overdue order for the dispatch report.
type GetStaleOrdersQueryResponse struct {
	ID           kernel.UUID
	AssigneeID   kernel.UUID
	AssigneeName string
	CustomerName string
	CreatedAt    time.Time
}
