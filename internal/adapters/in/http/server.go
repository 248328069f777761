// Package http provides the REST API for placing orders, changing their
// status and retrieving them. All routes under /api/v1 require a bearer
// token; the resolved actor drives authorization inside the domain.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body for POST /api/v1/orders.
type CreateOrderRequest struct {
	ServiceName string `json:"service_name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// ChangeStatusRequest is the body for POST /api/v1/orders/:id/status.
// WorkerID is only used when an admin assigns a named worker.
type ChangeStatusRequest struct {
	Status   string  `json:"status"`
	WorkerID *string `json:"worker_id,omitempty"`
}

// OrderResponse is the JSON view of an order with its history.
type OrderResponse struct {
	ID          string                 `json:"id"`
	ClientID    string                 `json:"client_id"`
	WorkerID    *string                `json:"worker_id,omitempty"`
	ServiceName string                 `json:"service_name"`
	Description string                 `json:"description,omitempty"`
	Price       int                    `json:"price"`
	Status      string                 `json:"status"`
	History     []HistoryEntryResponse `json:"history"`
}

// HistoryEntryResponse is the JSON view of one recorded status change.
type HistoryEntryResponse struct {
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderReader loads an order view on behalf of an actor.
// Satisfied by queries.GetOrderQueryHandler.
type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler OrderReader

	verifier ports.CredentialVerifier
}

// NewServer creates a new HTTP server with the required command and query
// handlers and the credential verifier used by the auth middleware.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler OrderReader,
	verifier ports.CredentialVerifier,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		changeStatusHandler: changeStatusHandler,
		getOrderHandler:     getOrderHandler,
		verifier:            verifier,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", s.AuthMiddleware)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.GET("/orders/:id", s.GetOrder)
}

// AuthMiddleware resolves the bearer token into an actor and stores it in the
// request context. Requests without a valid token are rejected with 401.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Bearer token is required",
			})
		}

		actor, err := s.verifier.Verify(ctx.Request().Context(), token)
		if err != nil {
			return s.mapError(ctx, err)
		}

		ctx.Set(actorContextKey, actor)
		return next(ctx)
	}
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// authenticated client and returns it with its initial history.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if !actor.Role().IsClient() {
		return s.mapError(ctx, errs.NewNotAuthorizedError("place order"))
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor.ID(), req.ServiceName, req.Description, req.Price,
	)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, actor, http.StatusCreated)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// to a new status on behalf of the authenticated actor. Returns the updated
// order on success.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.mapError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.mapError(ctx, err)
	}

	var workerID *kernel.UUID
	if req.WorkerID != nil {
		wID, wErr := kernel.UUIDFromString(*req.WorkerID)
		if wErr != nil {
			return s.mapError(ctx, errs.NewValueIsInvalidErrorWithCause("worker_id", wErr))
		}
		workerID = &wID
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor, workerID)
	if err != nil {
		return s.mapError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return s.respondWithOrder(ctx, orderID, actor, http.StatusOK)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves an order with its
// history, subject to the actor's visibility.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return s.mapError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.mapError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	return s.respondWithOrder(ctx, orderID, actor, http.StatusOK)
}

func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID, actor kernel.Actor, status int) error {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.mapError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(status, toOrderResponse(resp))
}

func toOrderResponse(resp queries.GetOrderQueryResponse) OrderResponse {
	var workerID *string
	if resp.WorkerID != nil {
		id := resp.WorkerID.String()
		workerID = &id
	}

	history := make([]HistoryEntryResponse, 0, len(resp.History))
	for _, entry := range resp.History {
		history = append(history, HistoryEntryResponse{
			Status:     entry.Status.String(),
			ActorID:    entry.ActorID.String(),
			ActorRole:  entry.ActorRole.String(),
			OccurredAt: entry.OccurredAt,
		})
	}

	return OrderResponse{
		ID:          resp.ID.String(),
		ClientID:    resp.ClientID.String(),
		WorkerID:    workerID,
		ServiceName: resp.ServiceName,
		Description: resp.Description,
		Price:       resp.Price,
		Status:      resp.Status.String(),
		History:     history,
	}
}

// actorFromContext retrieves the actor stored by AuthMiddleware.
func actorFromContext(ctx echo.Context) (kernel.Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errs.NewUnauthenticatedError("request is not authenticated")
	}

	return actor, nil
}

// mapError translates domain errors into HTTP responses: unknown orders map
// to 404, authorization failures to 403, undefined transitions to 409,
// authentication failures to 401, and validation failures to 400.
func (s *Server) mapError(ctx echo.Context, err error) error {
	var status int

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		return ctx.JSON(status, ErrorResponse{
			Code:    status,
			Message: "Internal server error",
		})
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
