// Package templaterepo provides data transfer objects and mapping functions
// for the service template catalog. Templates are administered outside this
// service, so the repository only reads.
package templaterepo

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"

	"github.com/google/uuid"
)

// ServiceTemplateDTO represents the database structure of a catalog entry.
// The schema and presentation hints are stored as jsonb documents.
type ServiceTemplateDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:text"`
	Description       string    `gorm:"type:text"`
	SchemaDocument    []byte    `gorm:"type:jsonb;column:schema_document"`
	PresentationHints []byte    `gorm:"type:jsonb;column:presentation_hints"`
	CreatedAt         time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for template entities.
// Overrides GORM's default naming convention to use "service_templates".
func (ServiceTemplateDTO) TableName() string {
	return "service_templates"
}

// FromDomain converts a template aggregate to its database representation.
// Exported for test seeding; the running service never writes the catalog.
func FromDomain(aggregate *template.ServiceTemplate) (ServiceTemplateDTO, error) {
	schemaDoc, err := aggregate.Schema().Document()
	if err != nil {
		return ServiceTemplateDTO{}, err
	}

	return ServiceTemplateDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Description:       aggregate.Description(),
		SchemaDocument:    schemaDoc,
		PresentationHints: aggregate.PresentationHints(),
		CreatedAt:         aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a template aggregate. The stored
// schema document is re-parsed, so a corrupted catalog row fails here rather
// than at validation time.
func toDomain(dto ServiceTemplateDTO) (*template.ServiceTemplate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	schema, err := template.ParseSchema(dto.SchemaDocument)
	if err != nil {
		return nil, err
	}

	return template.NewServiceTemplate(
		id,
		dto.Name,
		dto.Description,
		schema,
		dto.PresentationHints,
		dto.CreatedAt,
	)
}
