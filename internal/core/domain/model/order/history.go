package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// HistoryEntry is an immutable record of a single status change: the status
// the order entered, who caused it and when. Entries are only ever appended
// to an order's history, never mutated or reordered.
type HistoryEntry struct {
	status     Status
	actorID    kernel.UUID
	actorRole  kernel.Role
	occurredAt time.Time
}

// NewHistoryEntry creates a history entry for a status change performed by actor.
func NewHistoryEntry(status Status, actor kernel.Actor, occurredAt time.Time) (HistoryEntry, error) {
	if err := errors.Join(status.Validate(), actor.Validate()); err != nil {
		return HistoryEntry{}, err
	}

	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return HistoryEntry{
		status:     status,
		actorID:    actor.ID(),
		actorRole:  actor.Role(),
		occurredAt: occurredAt,
	}, nil
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
func RestoreHistoryEntry(
	status Status,
	actorID kernel.UUID,
	actorRole kernel.Role,
	occurredAt time.Time,
) (HistoryEntry, error) {
	actor, err := kernel.NewActor(actorID, actorRole)
	if err != nil {
		return HistoryEntry{}, err
	}

	return NewHistoryEntry(status, actor, occurredAt)
}

// Status returns the status the order entered.
func (e HistoryEntry) Status() Status {
	return e.status
}

// ActorID returns the identity of the actor who caused the change.
func (e HistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor performed the change as.
func (e HistoryEntry) ActorRole() kernel.Role {
	return e.actorRole
}

// OccurredAt returns when the change happened.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Validate checks that the entry was created through a constructor.
func (e HistoryEntry) Validate() error {
	if e.occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	return errors.Join(e.status.Validate(), e.actorID.Validate(), e.actorRole.Validate())
}
