package queries

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves an order and its history from the database
// and enforces visibility: an admin sees every order, a client its own
// orders, and a worker orders assigned to it plus unassigned ones.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, services.NewEligibilityPolicy())
//	resp, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, errs.ErrNotAuthorized):
//	    // actor may not see this order
//	}
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.EligibilityPolicy
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection and the eligibility policy shared with
// the notification dispatcher.
func NewGetOrderQueryHandler(db *gorm.DB, policy services.EligibilityPolicy) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: policy}
}

// Handle executes the query. The aggregate is restored from its rows so the
// same invariants hold for reads as for writes, then checked against the
// actor's visibility before any data is returned.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	actor := query.Actor()
	if !h.policy.IsEligible(actor.ID(), actor.Role(), aggregate) {
		return GetOrderQueryResponse{}, errs.NewNotAuthorizedError("view order")
	}

	history := aggregate.History()
	entries := make([]OrderHistoryEntryResponse, 0, len(history))
	for _, entry := range history {
		entries = append(entries, OrderHistoryEntryResponse{
			Status:     entry.Status(),
			ActorID:    entry.ActorID(),
			ActorRole:  entry.ActorRole(),
			OccurredAt: entry.OccurredAt(),
		})
	}

	return GetOrderQueryResponse{
		ID:          aggregate.ID(),
		ClientID:    aggregate.ClientID(),
		WorkerID:    aggregate.Worker(),
		ServiceName: aggregate.ServiceName(),
		Description: aggregate.Description(),
		Price:       aggregate.Price(),
		Status:      aggregate.Status(),
		History:     entries,
	}, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	var row struct {
		ID          uuid.UUID
		ClientID    uuid.UUID
		WorkerID    uuid.NullUUID
		ServiceName string
		Description string
		Price       int
		Status      int
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			worker_id,
			service_name,
			description,
			price,
			status
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(row.ClientID[:])
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if row.WorkerID.Valid {
		wID, wErr := kernel.UUIDFromBytes(row.WorkerID.UUID[:])
		if wErr != nil {
			return nil, wErr
		}
		workerID = &wID
	}

	history, err := h.loadHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		clientID,
		workerID,
		row.ServiceName,
		row.Description,
		row.Price,
		order.Status(row.Status),
		history,
	)
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			actor_id,
			actor_role,
			occurred_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]order.HistoryEntry, 0)
	for rows.Next() {
		var (
			status     int
			actorID    uuid.UUID
			actorRole  int
			occurredAt time.Time
		)

		if err = rows.Scan(&status, &actorID, &actorRole, &occurredAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		entry, entryErr := order.RestoreHistoryEntry(
			order.Status(status),
			id,
			kernel.Role(actorRole),
			occurredAt,
		)
		if entryErr != nil {
			return nil, entryErr
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
