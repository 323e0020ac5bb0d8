// Package ports defines repository interfaces for the field-service domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
)

// ErrConcurrentUpdate is returned by UpdateIfStatus when the order's stored
// status no longer matches the status the caller loaded. The caller lost a
// race and must re-read before retrying.
var ErrConcurrentUpdate = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for work order aggregates.
// Provides methods for storing, retrieving, and querying orders based on
// their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns an error wrapping errs.ErrVersionIsInvalid if an order with
	// the same ID already exists.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// UpdateIfStatus persists changes to an existing order, but only while
	// the stored status still equals expectedStatus. A mismatch means a
	// concurrent writer transitioned the order first; ErrConcurrentUpdate is
	// returned and nothing is written.
	UpdateIfStatus(ctx context.Context, aggregate *workorder.WorkOrder, expectedStatus workorder.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetAllInProgressByAssignee retrieves the technician's current
	// in-progress orders. Used by the single-active-job check inside the
	// claiming transaction.
	GetAllInProgressByAssignee(ctx context.Context, technicianID kernel.UUID) ([]*workorder.WorkOrder, error)

	// Delete removes an order from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
