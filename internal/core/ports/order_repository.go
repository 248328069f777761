// Package ports defines the contracts between the application core and
// infrastructure adapters: persistence, transaction control, credential
// verification and event delivery. Keeping them here enables dependency
// inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored with their complete append-only history and are never
// deleted; cancellation is just another recorded status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including any
	// history entries appended since it was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status, assignment and
	// full history. Returns errs.ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order like Get but additionally locks the row
	// for the duration of the surrounding transaction. All status changes for
	// an order load it through GetForUpdate so concurrent transitions on the
	// same order serialize instead of racing.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
