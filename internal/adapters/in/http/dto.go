package http

import (
	"encoding/json"
	"time"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. The client supplies
// the order ID so retried creates are detectable as duplicates.
type CreateOrderRequest struct {
	ID              string  `json:"id"`
	TemplateID      string  `json:"template_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	AssigneeID      *string `json:"assignee_id,omitempty"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:orderID.
// AssigneeID distinguishes three cases: absent leaves the assignee alone,
// null clears it, a UUID sets it. Status moves the order between pending and
// in_progress.
type UpdateOrderRequest struct {
	AssigneeID json.RawMessage `json:"assignee_id,omitempty"`
	Status     string          `json:"status,omitempty"`
}

// CapturedDataRequest is the body of the progress and completion endpoints:
// the captured form data keyed by schema field name.
type CapturedDataRequest struct {
	Data map[string]interface{} `json:"data"`
}

// OrderResponse is one work order row of the board, with the template name
// and assignee display name joined in.
type OrderResponse struct {
	ID              string          `json:"id"`
	TemplateID      string          `json:"template_id"`
	TemplateName    string          `json:"template_name"`
	Status          string          `json:"status"`
	AssigneeID      *string         `json:"assignee_id,omitempty"`
	AssigneeName    string          `json:"assignee_name,omitempty"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	CapturedData    json.RawMessage `json:"captured_data,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// TemplateResponse is one service template of the catalog. SchemaDocument
// and PresentationHints are passed through verbatim for the client's form
// renderer.
type TemplateResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	SchemaDocument    json.RawMessage `json:"schema_document"`
	PresentationHints json.RawMessage `json:"presentation_hints,omitempty"`
}

// TechnicianResponse is one entry of the technician roster for assignment
// pickers.
type TechnicianResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
