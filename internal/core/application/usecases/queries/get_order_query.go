// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Query handlers read the database directly and never mutate aggregates.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full status history on
// behalf of an authenticated actor. The same visibility rules as for live
// notifications apply, so a reconnecting subscriber can always re-fetch the
// orders it would have received events for.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db, services.NewEligibilityPolicy())
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order for the given actor.
// Validates the order identifier and the acting identity.
func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	orderQuery := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderQuery.setOrderID(orderID),
		orderQuery.setActor(actor),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return orderQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the authenticated identity requesting the order.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrderQueryResponse represents a complete order view, including the
// append-only status history in chronological order.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	ClientID    kernel.UUID
	WorkerID    *kernel.UUID
	ServiceName string
	Description string
	Price       int
	Status      order.Status
	History     []OrderHistoryEntryResponse
}

// OrderHistoryEntryResponse represents one recorded status change.
type OrderHistoryEntryResponse struct {
	Status     order.Status
	ActorID    kernel.UUID
	ActorRole  kernel.Role
	OccurredAt time.Time
}
