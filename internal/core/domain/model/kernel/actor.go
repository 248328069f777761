package kernel

import "errors"

// Actor is an authenticated identity performing an operation on an order.
// It combines the user's unique identifier with the role the credential was
// issued for. Actor is immutable and safe for concurrent use.
//
// Example usage:
//
//	actor, err := kernel.NewActor(userID, kernel.RoleWorker)
//	if err != nil {
//	    return err
//	}
//	event, err := order.ApplyTransition(order.InProgress, actor, nil, time.Now())
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a user identifier and role.
// Returns an error if either part is invalid.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the role the actor authenticated as.
func (a Actor) Role() Role {
	return a.role
}

// IsEqual compares two actors by identity and role.
func (a Actor) IsEqual(other Actor) bool {
	return a.id.IsEqual(other.id) && a.role == other.role
}

// Validate checks that the actor was created through NewActor.
// The zero value fails validation because its UUID is invalid.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
