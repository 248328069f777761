package notifications

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

const defaultDeliveryTimeout = 5 * time.Second

// Dispatcher fans transition events out to eligible subscribers. It
// implements ports.EventDispatcher.
//
// Eligibility is recomputed against the order snapshot for every event, so a
// worker that loses a claim race stops receiving updates from the very next
// event on. Messages are enqueued synchronously while a connection's buffer
// has room, so events for the same connection arrive in the order they were
// dispatched. Only a full buffer falls back to a background delivery with a
// bounded timeout; that delivery times out and is logged, never blocking the
// status change that produced the event or delivery to other subscribers.
type Dispatcher struct {
	registry *Registry
	policy   services.EligibilityPolicy
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher delivering through the given registry.
// A non-positive timeout falls back to a default delivery timeout.
func NewDispatcher(
	registry *Registry,
	policy services.EligibilityPolicy,
	timeout time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		registry: registry,
		policy:   policy,
		timeout:  timeout,
		logger:   logger.With("component", "dispatcher"),
	}
}

// Dispatch delivers the event to every subscriber eligible for the order.
// It schedules deliveries and returns immediately; failures affect only the
// subscriber concerned and are logged.
func (d *Dispatcher) Dispatch(_ context.Context, event order.TransitionEvent, snapshot *order.Order) {
	if event.Validate() != nil || snapshot == nil || snapshot.Validate() != nil {
		d.logger.Warn("dropping malformed event")
		return
	}

	msg := NewTransitionMessage(event, snapshot)

	for _, sub := range d.registry.Snapshot() {
		if !d.policy.IsEligible(sub.UserID(), sub.Role(), snapshot) {
			continue
		}

		// Fast path keeps per-connection ordering; a full buffer falls
		// back to a timed background delivery.
		if err := sub.TrySend(msg); err != nil {
			go d.deliver(sub, msg)
		}
	}
}

func (d *Dispatcher) deliver(sub *Subscriber, msg Message) {
	if err := sub.Send(msg, d.timeout); err != nil {
		d.logger.Warn("notification delivery failed",
			"subscriber", sub.ID().String(),
			"user", sub.UserID().String(),
			"order", msg.Payload.OrderID,
			"type", msg.Type,
			"error", err,
		)
	}
}
