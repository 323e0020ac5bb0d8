package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order board straight from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern; rows
// join the template name and the assignee's display name so the UI renders
// without follow-up lookups.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order board queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the board query.
// Technicians see their own assignments plus unassigned pending orders they
// could claim; dispatchers see all. Results are sorted newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			o.id,
			o.template_id,
			t.name,
			o.status,
			o.assignee_id,
			p.display_name,
			o.customer_name,
			o.customer_address,
			o.captured_data,
			o.created_at,
			o.completed_at
		FROM work_orders o
		JOIN service_templates t ON t.id = o.template_id
		LEFT JOIN profiles p ON p.id = o.assignee_id
		WHERE 1=1
	`
	args := make([]any, 0, 3)

	if query.Actor().IsTechnician() {
		sqlText += " AND (o.assignee_id = ? OR (o.assignee_id IS NULL AND o.status = ?))"
		args = append(args, query.Actor().ID().Bytes(), workorder.Pending.String())
	}
	if query.StatusFilter() != workorder.Unknown {
		sqlText += " AND o.status = ?"
		args = append(args, query.StatusFilter().String())
	}
	sqlText += " ORDER BY o.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id, templateID uuid.UUID
		var assigneeID uuid.NullUUID
		var assigneeName sql.NullString
		var status string
		var capturedData []byte
		var completedAt sql.NullTime

		err = rows.Scan(
			&id,
			&templateID,
			&resp.TemplateName,
			&status,
			&assigneeID,
			&assigneeName,
			&resp.CustomerName,
			&resp.CustomerAddress,
			&capturedData,
			&resp.CreatedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		tmplID, idErr := kernel.UUIDFromBytes(templateID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.TemplateID = tmplID

		orderStatus, statusErr := workorder.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = orderStatus

		if assigneeID.Valid {
			aID, idErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.AssigneeID = &aID
		}
		if assigneeName.Valid {
			resp.AssigneeName = assigneeName.String
		}
		if len(capturedData) > 0 {
			resp.CapturedData = json.RawMessage(capturedData)
		}
		if completedAt.Valid {
			at := completedAt.Time.In(time.UTC)
			resp.CompletedAt = &at
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
