package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// EventDispatcher fans a committed transition event out to interested
// subscribers. Dispatch is asynchronous relative to the caller: it schedules
// delivery and returns without waiting for subscribers, so a slow or dead
// connection can never block a status change.
//
// The order snapshot reflects the aggregate state after the transition and is
// used to decide, per subscriber, whether it may see the event.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event order.TransitionEvent, snapshot *order.Order)
}
