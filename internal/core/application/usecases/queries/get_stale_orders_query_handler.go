package queries

import (
	"context"
	"database/sql"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleOrdersQueryHandler reads overdue in-progress orders for the
// dispatch report job.
type GetStaleOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleOrdersQueryHandler creates a handler for stale order queries.
func NewGetStaleOrdersQueryHandler(db *gorm.DB) GetStaleOrdersQueryHandler {
	return GetStaleOrdersQueryHandler{db: db}
}

// Handle executes the query. Oldest orders come first so the report leads
// with the most overdue work.
func (h GetStaleOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleOrdersQuery,
) ([]GetStaleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.assignee_id,
			p.display_name,
			o.customer_name,
			o.created_at
		FROM work_orders o
		LEFT JOIN profiles p ON p.id = o.assignee_id
		WHERE o.status = ? AND o.created_at < ?
		ORDER BY o.created_at
	`, workorder.InProgress.String(), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetStaleOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetStaleOrdersQueryResponse
		var id, assigneeID uuid.UUID
		var assigneeName sql.NullString

		err = rows.Scan(
			&id,
			&assigneeID,
			&assigneeName,
			&resp.CustomerName,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		technicianID, idErr := kernel.UUIDFromBytes(assigneeID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.AssigneeID = technicianID

		if assigneeName.Valid {
			resp.AssigneeName = assigneeName.String
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
