package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetStaleCreatedOrdersQueryIsNotConstructed = errors.New(
	"GetStaleCreatedOrdersQuery must be created via NewGetStaleCreatedOrdersQuery constructor",
)

// GetStaleCreatedOrdersQuery retrieves orders that have been sitting in
// "created" status since before the cutoff, i.e. orders no worker has claimed
// yet. Used by the periodic reminder job to nudge admins.
//
// Example:
//
//	query, err := NewGetStaleCreatedOrdersQuery(time.Now().Add(-30 * time.Minute))
//	if err != nil {
//	    return err
//	}
//
//	stale, err := handler.Handle(ctx, query)
type GetStaleCreatedOrdersQuery struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleCreatedOrdersQuery creates a query for unclaimed orders created
// before the cutoff. The cutoff must not be zero.
func NewGetStaleCreatedOrdersQuery(cutoff time.Time) (GetStaleCreatedOrdersQuery, error) {
	if cutoff.IsZero() {
		return GetStaleCreatedOrdersQuery{}, errs.NewValueIsRequiredError("cutoff")
	}

	return GetStaleCreatedOrdersQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleCreatedOrdersQueryIsNotConstructed if validation fails.
func (q GetStaleCreatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleCreatedOrdersQueryIsNotConstructed)
}

// Cutoff returns the creation time threshold.
func (q GetStaleCreatedOrdersQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStaleCreatedOrdersQueryResponse represents one unclaimed order.
type GetStaleCreatedOrdersQueryResponse struct {
	ID          kernel.UUID
	ClientID    kernel.UUID
	ServiceName string
	CreatedAt   time.Time
}
