// Package kernel provides shared value objects used across the domain model.
//
// The package includes:
//   - UUID: An immutable identifier value object wrapping github.com/google/uuid
//   - Role: The party kind acting on an order (client, worker, admin)
//   - Actor: An authenticated identity composed of a UUID and a Role
//
// All value objects are immutable after construction and validate their
// invariants in factory functions. The zero value of each type is invalid
// and is rejected by Validate, preventing accidental use of uninitialized
// identities in domain operations.
package kernel
