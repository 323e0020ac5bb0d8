package templaterepo

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTemplateRepository implements ports.TemplateRepository using GORM.
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Get retrieves a template by ID.
func (r *GormTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*template.ServiceTemplate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceTemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("template", id.String())
		}
		return nil, errs.NewStoreUnavailableError(err)
	}

	return toDomain(dto)
}

// GetAll retrieves the whole catalog, newest first.
func (r *GormTemplateRepository) GetAll(ctx context.Context) ([]*template.ServiceTemplate, error) {
	var dtos []ServiceTemplateDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreUnavailableError(err)
	}

	templates := make([]*template.ServiceTemplate, 0, len(dtos))
	for _, dto := range dtos {
		tmpl, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, nil
}
