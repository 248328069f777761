package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrTransitionEventIsNotConstructed = errors.New(
		"TransitionEvent must be created via NewTransitionEvent constructor",
	)
)

// TransitionEvent is the immutable value object produced once per successful
// status change. It carries everything a live subscriber needs to render the
// update: which order moved, from which status to which, who caused it and
// when.
//
// An event emitted for order creation has no previous status; HasPrevious
// reports false for it.
type TransitionEvent struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	previous   Status
	next       Status
	actorID    kernel.UUID
	actorRole  kernel.Role
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewTransitionEvent creates a transition event. previous may be Unknown to
// represent order creation; next must always be a valid status.
func NewTransitionEvent(
	orderID kernel.UUID,
	previous Status,
	next Status,
	actor kernel.Actor,
	occurredAt time.Time,
) (TransitionEvent, error) {
	event := TransitionEvent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		event.setOrderID(orderID),
		event.setStatuses(previous, next),
		event.setActor(actor),
		event.setOccurredAt(occurredAt),
	); err != nil {
		return TransitionEvent{}, err
	}

	return event, nil
}

// Validate ensures the event was created through the constructor.
func (e TransitionEvent) Validate() error {
	return e.guard.Validate(ErrTransitionEventIsNotConstructed)
}

// OrderID returns the identifier of the order that changed.
func (e TransitionEvent) OrderID() kernel.UUID {
	return e.orderID
}

// Previous returns the status the order left. For creation events this is
// Unknown; check HasPrevious before using it.
func (e TransitionEvent) Previous() Status {
	return e.previous
}

// Next returns the status the order entered.
func (e TransitionEvent) Next() Status {
	return e.next
}

// HasPrevious reports whether the event represents a transition from an
// existing status rather than order creation.
func (e TransitionEvent) HasPrevious() bool {
	return e.previous != Unknown
}

// ActorID returns the identity of the actor who caused the transition.
func (e TransitionEvent) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor performed the transition as.
func (e TransitionEvent) ActorRole() kernel.Role {
	return e.actorRole
}

// OccurredAt returns when the transition happened.
func (e TransitionEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *TransitionEvent) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	e.orderID = orderID
	return nil
}

func (e *TransitionEvent) setStatuses(previous, next Status) error {
	if previous != Unknown {
		if err := previous.Validate(); err != nil {
			return err
		}
	}

	if err := next.Validate(); err != nil {
		return err
	}

	e.previous = previous
	e.next = next
	return nil
}

func (e *TransitionEvent) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	e.actorID = actor.ID()
	e.actorRole = actor.Role()
	return nil
}

func (e *TransitionEvent) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}

	e.occurredAt = occurredAt
	return nil
}
