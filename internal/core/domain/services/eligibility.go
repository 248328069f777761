package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// EligibilityPolicy is a domain service deciding whether a subscriber identity
// may receive transition events for an order.
//
// Business rules:
//   - An admin is eligible for every order
//   - A client is eligible for orders it owns
//   - A worker is eligible for orders assigned to it, plus unassigned orders
//     it may still claim
//
// The policy is a pure predicate over the current order snapshot; it holds no
// state and is safe for concurrent use. Eligibility is recomputed per event
// rather than cached, so reassignment never produces stale permissions.
//
// Example usage:
//
//	policy := services.NewEligibilityPolicy()
//	if policy.IsEligible(sub.UserID(), sub.Role(), orderSnapshot) {
//	    // deliver the event
//	}
type EligibilityPolicy struct{}

// NewEligibilityPolicy creates a new eligibility policy.
func NewEligibilityPolicy() EligibilityPolicy {
	return EligibilityPolicy{}
}

// IsEligible reports whether a subscriber with the given identity and role
// may receive events for the order. Invalid input (nil order, invalid
// identity or role) is never eligible.
func (EligibilityPolicy) IsEligible(userID kernel.UUID, role kernel.Role, o *order.Order) bool {
	if o == nil || o.Validate() != nil {
		return false
	}
	if userID.Validate() != nil || role.Validate() != nil {
		return false
	}

	switch {
	case role.IsAdmin():
		return true
	case role.IsClient():
		return o.ClientID().IsEqual(userID)
	case role.IsWorker():
		if worker := o.Worker(); worker != nil {
			return worker.IsEqual(userID)
		}
		return true
	default:
		return false
	}
}
