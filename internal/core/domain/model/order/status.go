package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Created ──> Assigned ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Completed and Cancelled are terminal states with no outgoing transitions.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed by a client.
	// Orders in this status are waiting to be claimed by a worker.
	Created

	// Assigned indicates the order has been claimed by or assigned to a worker.
	Assigned

	// InProgress indicates the assigned worker has started fulfilling the order.
	InProgress

	// Completed indicates the order has been successfully fulfilled.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled before completion.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Created:    "created",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "created",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getTransitions returns the set of defined edges of the status state machine.
// Terminal statuses map to an empty set.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:    {Assigned, Cancelled},
		Assigned:   {InProgress, Cancelled},
		InProgress: {Completed, Cancelled},
		Completed:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses a status from its wire representation
// (e.g. "created", "in_progress"). Used when decoding transition requests
// and when reconstructing orders from persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Assigned, InProgress, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateCanHaveWorker validates the consistency between order status and
// worker assignment.
//
// Business rules:
//   - Created orders must not have a worker assigned
//   - Assigned, InProgress and Completed orders must have a worker assigned
//   - Cancelled orders may or may not, depending on when cancellation happened
func (s Status) ValidateCanHaveWorker(worker bool) error {
	if s == Cancelled {
		return nil
	}

	if worker && s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a worker", s.String()),
		)
	}

	if !worker && (s == Assigned || s == InProgress || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no worker", s.String()),
		)
	}

	return nil
}

// IsTerminal reports whether the status admits no outgoing transitions.
// Completed and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	targets, ok := getTransitions()[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the state machine defines an edge from
// the current status to target. It performs no authorization checks; those
// belong to Order.ApplyTransition.
//
// Example:
//
//	order.Created.CanTransitionTo(order.Assigned)  // true
//	order.Created.CanTransitionTo(order.Completed) // false
//	order.Completed.CanTransitionTo(order.Cancelled) // false (terminal)
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range getTransitions()[s] {
		if t == target {
			return true
		}
	}
	return false
}
