package queries

import (
	"context"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTechniciansQueryHandler reads the technician roster from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetTechniciansQueryHandler struct {
	db *gorm.DB
}

// NewGetTechniciansQueryHandler creates a handler for technician roster
// queries. Requires a GORM database connection for query execution.
func NewGetTechniciansQueryHandler(db *gorm.DB) GetTechniciansQueryHandler {
	return GetTechniciansQueryHandler{db: db}
}

// Handle executes the roster query.
// Returns profiles with the technician role sorted by display name.
func (h GetTechniciansQueryHandler) Handle(
	ctx context.Context,
	query GetTechniciansQuery,
) ([]GetTechniciansQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			display_name
		FROM profiles
		WHERE role = ?
		ORDER BY display_name
	`, actor.Technician.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	technicians := make([]GetTechniciansQueryResponse, 0)
	for rows.Next() {
		var resp GetTechniciansQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.DisplayName,
		)
		if err != nil {
			return nil, err
		}

		technicianID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = technicianID

		technicians = append(technicians, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return technicians, nil
}
