package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTemplatesQueryHandler reads the template catalog from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetTemplatesQueryHandler struct {
	db *gorm.DB
}

// NewGetTemplatesQueryHandler creates a handler for template catalog queries.
// Requires a GORM database connection for query execution.
func NewGetTemplatesQueryHandler(db *gorm.DB) GetTemplatesQueryHandler {
	return GetTemplatesQueryHandler{db: db}
}

// Handle executes the catalog query. Results are sorted by name for a
// stable picker.
func (h GetTemplatesQueryHandler) Handle(
	ctx context.Context,
	query GetTemplatesQuery,
) ([]GetTemplatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			schema_document,
			presentation_hints
		FROM service_templates
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]GetTemplatesQueryResponse, 0)
	for rows.Next() {
		var resp GetTemplatesQueryResponse
		var id uuid.UUID
		var description sql.NullString
		var schemaDoc, hints []byte

		err = rows.Scan(
			&id,
			&resp.Name,
			&description,
			&schemaDoc,
			&hints,
		)
		if err != nil {
			return nil, err
		}

		templateID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = templateID

		if description.Valid {
			resp.Description = description.String
		}
		resp.SchemaDocument = json.RawMessage(schemaDoc)
		if len(hints) > 0 {
			resp.PresentationHints = json.RawMessage(hints)
		}

		templates = append(templates, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}
