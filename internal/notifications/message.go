// Package notifications implements live fan-out of order transition events to
// connected subscribers. A registry tracks active connections, and a
// dispatcher filters each event per subscriber and delivers it without ever
// blocking the caller that produced the event.
package notifications

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Message type names carried on the wire.
const (
	MessageOrderCreated    = "order_created"
	MessageWorkerAssigned  = "worker_assigned"
	MessageOrderInProgress = "order_in_progress"
	MessageOrderCompleted  = "order_completed"
	MessageOrderCanceled   = "order_canceled"

	// MessageNewOrder flags an order still waiting for a worker.
	MessageNewOrder = "new_order"

	// MessageConnectionConfirmed acknowledges a freshly registered
	// connection before any order events flow.
	MessageConnectionConfirmed = "connection_confirmed"
)

// Message is the envelope delivered to subscribers.
type Message struct {
	Type      string    `json:"type"`
	Payload   Payload   `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Payload carries the event details. Order fields are empty on connection
// confirmations; user fields are empty on order events.
type Payload struct {
	Event     string `json:"event"`
	OrderID   string `json:"order_id,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	WorkerID  string `json:"worker_id,omitempty"`
	Status    string `json:"status,omitempty"`
	OldStatus string `json:"old_status,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Message   string `json:"message,omitempty"`
}

// NewTransitionMessage builds the wire message for a transition event.
// The message type reflects the status the order moved into; a creation event
// (no previous status) becomes an order_created message.
func NewTransitionMessage(event order.TransitionEvent, snapshot *order.Order) Message {
	payload := Payload{
		Event:   messageType(event),
		OrderID: event.OrderID().String(),
		Status:  event.Next().String(),
	}

	if event.HasPrevious() {
		payload.OldStatus = event.Previous().String()
	}

	if snapshot != nil && snapshot.Validate() == nil {
		payload.ClientID = snapshot.ClientID().String()
		if workerID := snapshot.Worker(); workerID != nil {
			payload.WorkerID = workerID.String()
		}
	}

	return Message{
		Type:      messageType(event),
		Payload:   payload,
		Timestamp: event.OccurredAt(),
	}
}

// NewUnclaimedOrderMessage builds a reminder message for an order that is
// still waiting to be claimed.
func NewUnclaimedOrderMessage(orderID, clientID string, createdAt time.Time) Message {
	return Message{
		Type: MessageNewOrder,
		Payload: Payload{
			Event:    MessageNewOrder,
			OrderID:  orderID,
			ClientID: clientID,
			Status:   order.Created.String(),
		},
		Timestamp: createdAt,
	}
}

// NewConnectionConfirmedMessage builds the acknowledgement sent to a
// connection right after it registers.
func NewConnectionConfirmedMessage(userID kernel.UUID, role kernel.Role, now time.Time) Message {
	return Message{
		Type: MessageConnectionConfirmed,
		Payload: Payload{
			Event:   MessageConnectionConfirmed,
			UserID:  userID.String(),
			Role:    role.String(),
			Message: "connection established",
		},
		Timestamp: now,
	}
}

func messageType(event order.TransitionEvent) string {
	if !event.HasPrevious() {
		return MessageOrderCreated
	}

	switch event.Next() {
	case order.Assigned:
		return MessageWorkerAssigned
	case order.InProgress:
		return MessageOrderInProgress
	case order.Completed:
		return MessageOrderCompleted
	case order.Cancelled:
		return MessageOrderCanceled
	default:
		return MessageOrderCreated
	}
}
