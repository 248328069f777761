package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleCreatedOrdersQueryHandler retrieves unclaimed orders from the
// database. Results are sorted oldest first so the longest-waiting orders
// surface at the top of reminders.
type GetStaleCreatedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleCreatedOrdersQueryHandler creates a handler for stale order queries.
// Requires a GORM database connection for query execution.
func NewGetStaleCreatedOrdersQueryHandler(db *gorm.DB) GetStaleCreatedOrdersQueryHandler {
	return GetStaleCreatedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve orders still in "created" status
// that were placed before the query's cutoff.
func (h GetStaleCreatedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleCreatedOrdersQuery,
) ([]GetStaleCreatedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetStaleCreatedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			service_name,
			created_at
		FROM orders
		WHERE status = ? AND created_at < ?
		ORDER BY created_at
	`, int(order.Created), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			clientID    uuid.UUID
			serviceName string
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &clientID, &serviceName, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		ownerID, idErr := kernel.UUIDFromBytes(clientID[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetStaleCreatedOrdersQueryResponse{
			ID:          orderID,
			ClientID:    ownerID,
			ServiceName: serviceName,
			CreatedAt:   createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
