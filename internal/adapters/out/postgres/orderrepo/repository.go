package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// CreateActiveAssigneeIndex creates the partial unique index that caps every
// technician at one in_progress order. AutoMigrate cannot express partial
// indexes, so it runs as explicit DDL alongside the schema migration.
func CreateActiveAssigneeIndex(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_work_orders_active_assignee
		 ON work_orders (assignee_id) WHERE status = 'in_progress'`,
	).Error
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM work order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work order to the database.
// A duplicate primary key surfaces as errs.ErrVersionIsInvalid, which makes
// retried creates with the same caller-supplied ID fail loudly instead of
// silently inserting twice.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewVersionIsInvalidError("orderID", err)
		}
		return errs.NewStoreUnavailableError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus saves an existing work order, guarded on the stored status
// still matching expectedStatus. The guard turns lost races into
// ports.ErrConcurrentUpdate instead of overwriting the winner's transition.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *workorder.WorkOrder,
	expectedStatus workorder.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// Select forces writing NULLs and zero values too; a cleared assignee or
	// captured-data reset must reach the row.
	result := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Select("template_id", "assignee_id", "status", "customer_name", "customer_address",
			"captured_data", "completed_at").
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		// The active-assignee index rejects a second in_progress order for the
		// same technician, closing the race two concurrent claims leave open.
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) && aggregate.Assignee() != nil {
			return fmt.Errorf(
				"technician %s already holds an active order: %w",
				aggregate.Assignee(), services.ErrActiveJobConflict,
			)
		}
		return errs.NewStoreUnavailableError(result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the row vanished or a concurrent writer changed the status.
		var exists int64
		if err = r.db.WithContext(ctx).
			Model(&WorkOrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&exists).Error; err != nil {
			return errs.NewStoreUnavailableError(err)
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return ports.ErrConcurrentUpdate
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a work order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreUnavailableError(err)
	}

	return toDomain(dto)
}

// GetAllInProgressByAssignee retrieves the technician's in-progress orders.
func (r *GormOrderRepository) GetAllInProgressByAssignee(
	ctx context.Context,
	technicianID kernel.UUID,
) ([]*workorder.WorkOrder, error) {
	if err := technicianID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WorkOrderDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "assignee_id = ? AND status = ?",
			technicianID.Bytes(), workorder.InProgress.String()).Error; err != nil {
		return nil, errs.NewStoreUnavailableError(err)
	}

	orders := make([]*workorder.WorkOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes a work order from the database.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&WorkOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewStoreUnavailableError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}
