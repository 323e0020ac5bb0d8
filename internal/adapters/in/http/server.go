// Package http exposes the work-order lifecycle over an echo server.
// Authentication happens upstream; ActorMiddleware turns the gateway's
// identity headers into a domain actor, and every handler delegates
// authorization to the command and query layer.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	claimOrderHandler       commands.ClaimOrderCommandHandler
	reassignOrderHandler    commands.ReassignOrderCommandHandler
	saveProgressHandler     commands.SaveProgressCommandHandler
	submitCompletionHandler commands.SubmitCompletionCommandHandler
	deleteOrderHandler      commands.DeleteOrderCommandHandler

	// Query handlers
	getOrdersHandler      queries.GetOrdersQueryHandler
	getTemplatesHandler   queries.GetTemplatesQueryHandler
	getTechniciansHandler queries.GetTechniciansQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	saveProgressHandler commands.SaveProgressCommandHandler,
	submitCompletionHandler commands.SubmitCompletionCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getTemplatesHandler queries.GetTemplatesQueryHandler,
	getTechniciansHandler queries.GetTechniciansQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		claimOrderHandler:       claimOrderHandler,
		reassignOrderHandler:    reassignOrderHandler,
		saveProgressHandler:     saveProgressHandler,
		submitCompletionHandler: submitCompletionHandler,
		deleteOrderHandler:      deleteOrderHandler,
		getOrdersHandler:        getOrdersHandler,
		getTemplatesHandler:     getTemplatesHandler,
		getTechniciansHandler:   getTechniciansHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1 behind the actor
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", ActorMiddleware())

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.PATCH("/orders/:orderID", s.UpdateOrder)
	api.POST("/orders/:orderID/progress", s.SaveProgress)
	api.POST("/orders/:orderID/completion", s.SubmitCompletion)
	api.DELETE("/orders/:orderID", s.DeleteOrder)

	api.GET("/templates", s.GetTemplates)
	api.GET("/technicians", s.GetTechnicians)
}

// GetOrders handles GET /api/v1/orders - retrieves the actor's order board,
// optionally narrowed by ?status=.
func (s *Server) GetOrders(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	statusFilter := workorder.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := workorder.StatusFromString(raw)
		if err != nil {
			return s.respondError(ctx, err)
		}
		statusFilter = parsed
	}

	query, err := queries.NewGetOrdersQuery(a, statusFilter)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		row := OrderResponse{
			ID:              order.ID.String(),
			TemplateID:      order.TemplateID.String(),
			TemplateName:    order.TemplateName,
			Status:          order.Status.String(),
			AssigneeName:    order.AssigneeName,
			CustomerName:    order.CustomerName,
			CustomerAddress: order.CustomerAddress,
			CapturedData:    order.CapturedData,
			CreatedAt:       order.CreatedAt,
			CompletedAt:     order.CompletedAt,
		}
		if order.AssigneeID != nil {
			id := order.AssigneeID.String()
			row.AssigneeID = &id
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - registers a new work order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	templateID, err := kernel.UUIDFromString(req.TemplateID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var assigneeID *kernel.UUID
	if req.AssigneeID != nil {
		id, idErr := kernel.UUIDFromString(*req.AssigneeID)
		if idErr != nil {
			return s.respondError(ctx, idErr)
		}
		assigneeID = &id
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, templateID, req.CustomerName, req.CustomerAddress, assigneeID, a,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim - a technician takes
// a pending order.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, a)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrder handles PATCH /api/v1/orders/:orderID - a dispatcher edit of
// the assignee, the status, or both.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	var changes commands.ReassignOrderChanges

	// An absent assignee_id leaves the assignment alone; an explicit null
	// clears it.
	if len(req.AssigneeID) > 0 {
		changes.SetAssignee = true
		if err = decodeNullableUUID(req.AssigneeID, &changes.AssigneeID); err != nil {
			return s.respondError(ctx, err)
		}
	}

	if req.Status != "" {
		status, statusErr := workorder.StatusFromString(req.Status)
		if statusErr != nil {
			return s.respondError(ctx, statusErr)
		}
		changes.ForcedStatus = status
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, changes, a)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SaveProgress handles POST /api/v1/orders/:orderID/progress - a mid-job
// save of captured data.
func (s *Server) SaveProgress(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CapturedDataRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSaveProgressCommand(orderID, template.Record(req.Data), a)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.saveProgressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitCompletion handles POST /api/v1/orders/:orderID/completion - the
// final submission that completes the order.
func (s *Server) SubmitCompletion(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CapturedDataRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitCompletionCommand(orderID, template.Record(req.Data), a)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.submitCompletionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderID - removes an open order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	a, ok := actorFromContext(ctx)
	if !ok {
		return s.unauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, a)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTemplates handles GET /api/v1/templates - retrieves the service
// template catalog for the create flow.
func (s *Server) GetTemplates(ctx echo.Context) error {
	if _, ok := actorFromContext(ctx); !ok {
		return s.unauthenticated(ctx)
	}

	templates, err := s.getTemplatesHandler.Handle(
		ctx.Request().Context(), queries.NewGetTemplatesQuery(),
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]TemplateResponse, len(templates))
	for i, tmpl := range templates {
		response[i] = TemplateResponse{
			ID:                tmpl.ID.String(),
			Name:              tmpl.Name,
			Description:       tmpl.Description,
			SchemaDocument:    tmpl.SchemaDocument,
			PresentationHints: tmpl.PresentationHints,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTechnicians handles GET /api/v1/technicians - retrieves the technician
// roster for assignment pickers.
func (s *Server) GetTechnicians(ctx echo.Context) error {
	if _, ok := actorFromContext(ctx); !ok {
		return s.unauthenticated(ctx)
	}

	technicians, err := s.getTechniciansHandler.Handle(
		ctx.Request().Context(), queries.NewGetTechniciansQuery(),
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]TechnicianResponse, len(technicians))
	for i, technician := range technicians {
		response[i] = TechnicianResponse{
			ID:          technician.ID.String(),
			DisplayName: technician.DisplayName,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// respondError maps domain and application errors to HTTP status codes.
func (s *Server) respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, template.ErrSchemaValidation):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrActiveJobConflict),
		errors.Is(err, workorder.ErrInvalidTransition),
		errors.Is(err, workorder.ErrCompletedOrderIsImmutable),
		errors.Is(err, workorder.ErrAssignedToAnotherTechnician),
		errors.Is(err, ports.ErrConcurrentUpdate),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNothingToChange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) unauthenticated(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: "Request actor was not resolved",
	})
}

// decodeNullableUUID parses an assignee_id field that is either a UUID
// string or an explicit null.
func decodeNullableUUID(raw []byte, out **kernel.UUID) error {
	if string(raw) == "null" {
		*out = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errs.NewValueIsInvalidError("assigneeID")
	}

	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return err
	}
	*out = &id
	return nil
}
