// Package order provides domain entities and business logic for order
// lifecycle management. It implements the Order aggregate root with an
// append-only status history and a state machine over order statuses.
//
// The package includes:
//   - Order: The aggregate root owning identity, payload, assignment and history
//   - Status: A state machine that enforces valid order status transitions
//   - HistoryEntry: An immutable record of a single status change
//   - TransitionEvent: The value object emitted once per successful transition
//
// Key business rules:
//   - Order status follows a defined workflow:
//     Created -> Assigned -> InProgress -> Completed, with
//     Created/Assigned/InProgress -> Cancelled as an alternate terminal path
//   - Completed and Cancelled are terminal; no further transitions are permitted
//   - Every edge carries an authorization rule over the acting role and identity
//   - The current status always equals the status of the last history entry
//   - History is append-only and never empty after construction
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
