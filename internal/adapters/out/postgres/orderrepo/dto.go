// Package orderrepo provides data transfer objects and mapping functions for
// work order persistence. This package implements the repository pattern for
// the work order aggregate, handling the conversion between domain entities
// and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/errs"

	"github.com/google/uuid"
)

// WorkOrderDTO represents the database structure for persisting work order
// aggregates. Status is stored as its string form so rows read naturally in
// psql; captured data is a jsonb document.
type WorkOrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TemplateID      uuid.UUID  `gorm:"type:uuid;index;column:template_id"`
	AssigneeID      *uuid.UUID `gorm:"type:uuid;index;column:assignee_id"`
	Status          string     `gorm:"type:text;index"`
	CustomerName    string     `gorm:"type:text"`
	CustomerAddress string     `gorm:"type:text"`
	CapturedData    []byte     `gorm:"type:jsonb"`
	CreatedAt       time.Time  `gorm:"type:timestamptz"`
	CompletedAt     *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for work order entities.
// Overrides GORM's default naming convention to use "work_orders".
func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// fromDomain converts a work order aggregate to its database representation.
func fromDomain(aggregate *workorder.WorkOrder) (WorkOrderDTO, error) {
	var assigneeID *uuid.UUID
	if id := aggregate.Assignee(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	var capturedData []byte
	if data := aggregate.CapturedData(); data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return WorkOrderDTO{}, errs.NewValueIsInvalidErrorWithCause("capturedData", err)
		}
		capturedData = raw
	}

	return WorkOrderDTO{
		ID:              aggregate.ID().Bytes(),
		TemplateID:      aggregate.TemplateID().Bytes(),
		AssigneeID:      assigneeID,
		Status:          aggregate.Status().String(),
		CustomerName:    aggregate.CustomerName(),
		CustomerAddress: aggregate.CustomerAddress(),
		CapturedData:    capturedData,
		CreatedAt:       aggregate.CreatedAt(),
		CompletedAt:     aggregate.CompletedAt(),
	}, nil
}

// toDomain converts a database DTO to a work order aggregate.
// Reconstructs the complete aggregate via RestoreWorkOrder, which re-checks
// the cross-field invariants the schema cannot express.
func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	templateID, err := kernel.UUIDFromBytes(dto.TemplateID[:])
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	status, err := workorder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var capturedData template.Record
	if len(dto.CapturedData) > 0 {
		if err = json.Unmarshal(dto.CapturedData, &capturedData); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("capturedData", err)
		}
	}

	return workorder.RestoreWorkOrder(
		id,
		templateID,
		dto.CustomerName,
		dto.CustomerAddress,
		assigneeID,
		status,
		capturedData,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}
