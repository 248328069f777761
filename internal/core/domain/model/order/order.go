package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

const maxPrice = 100_000_000

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrHistoryIsBroken is returned when a restored order's history does not
	// end with the order's current status or is empty.
	ErrHistoryIsBroken = errors.New("order history must be non-empty and end with the current status")
)

// Order represents a service order in the system. It is the aggregate root
// that manages the order lifecycle from creation by a client, through claiming
// and fulfillment by a worker, to completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning client identity
//   - Service name is required and price must be positive
//   - Status transitions follow the state machine defined on Status, and each
//     edge is authorized against the acting role and identity
//   - History is append-only; the last entry's status always equals the
//     current status, and history is never empty
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Orders are never deleted; a
// cancelled order stays in storage with its full history.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID is the identity of the client who placed the order
	clientID kernel.UUID

	// workerID is the assigned worker's identity (nil until assignment)
	workerID *kernel.UUID

	// serviceName names the requested service
	serviceName string

	// description holds optional free-form details
	description string

	// price is the service price in the smallest currency unit (must be positive)
	price int

	// status is the current state in the order lifecycle
	status Status

	// history is the append-only sequence of status changes
	history []HistoryEntry

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order placed by a client. The order starts in
// Created status with a single history entry recorded for the owning client.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid)
//   - clientID: Identity of the client placing the order
//   - serviceName: Name of the requested service (required)
//   - description: Optional free-form details
//   - price: Service price in the smallest currency unit (must be positive)
//   - now: Creation timestamp recorded in the first history entry
//
// Example:
//
//	orderID := kernel.NewUUID()
//	o, err := order.NewOrder(orderID, clientID, "apartment cleaning", "", 4500, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	serviceName string,
	description string,
	price int,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setServiceName(serviceName),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	client, err := kernel.NewActor(clientID, kernel.RoleClient)
	if err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(Created, client, now)
	if err != nil {
		return nil, err
	}

	o.history = []HistoryEntry{entry}
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates all
// invariants, including that history is non-empty and ends with the current
// status, so corrupted rows cannot produce an inconsistent aggregate.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	workerID *kernel.UUID,
	serviceName string,
	description string,
	price int,
	status Status,
	history []HistoryEntry,
) (*Order, error) {
	o := &Order{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setServiceName(serviceName),
		o.setPrice(price),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return nil, err
		}
		w := *workerID
		o.workerID = &w
	}

	if err := status.ValidateCanHaveWorker(o.workerID != nil); err != nil {
		return nil, err
	}

	if len(history) == 0 || history[len(history)-1].Status() != status {
		return nil, ErrHistoryIsBroken
	}

	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.history = append([]HistoryEntry(nil), history...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// constructor. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the identity of the client who placed the order.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// Worker returns the assigned worker's identity.
// Returns nil if no worker is assigned.
func (o *Order) Worker() *kernel.UUID {
	if o.workerID == nil {
		return nil
	}
	w := *o.workerID
	return &w
}

// IsAssigned reports whether a worker is assigned to the order.
func (o *Order) IsAssigned() bool {
	return o.workerID != nil
}

// ServiceName returns the name of the requested service.
func (o *Order) ServiceName() string {
	return o.serviceName
}

// Description returns the optional order details.
func (o *Order) Description() string {
	return o.description
}

// Price returns the service price in the smallest currency unit.
func (o *Order) Price() int {
	return o.price
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the order's status history in append order.
// The last entry's status always equals the current status.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// ApplyTransition validates and applies a status change requested by actor.
//
// Validation happens in two steps:
//  1. The edge must be defined by the state machine from the current status;
//     otherwise InvalidTransitionError is returned (including any attempt to
//     leave a terminal status).
//  2. The actor must be authorized for the edge; otherwise NotAuthorizedError
//     is returned. Authorization rules:
//     - Created -> Assigned: a worker claiming the order for itself, or an
//       admin naming the worker via workerID. The order must be unassigned.
//     - Assigned -> InProgress, InProgress -> Completed: the assigned worker
//       or an admin.
//     - any -> Cancelled: the owning client or an admin.
//
// On success the order's status changes, a history entry is appended, and the
// resulting TransitionEvent is returned. On any failure the order is left
// completely untouched.
//
// Example:
//
//	event, err := o.ApplyTransition(order.InProgress, worker, nil, time.Now())
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // edge not defined from the current status
//	case errors.Is(err, errs.ErrNotAuthorized):
//	    // actor may not perform this edge
//	case err != nil:
//	    // validation failure
//	default:
//	    dispatcher.Dispatch(ctx, event, o)
//	}
func (o *Order) ApplyTransition(
	target Status,
	actor kernel.Actor,
	workerID *kernel.UUID,
	now time.Time,
) (TransitionEvent, error) {
	if err := o.Validate(); err != nil {
		return TransitionEvent{}, err
	}

	if err := errors.Join(target.Validate(), actor.Validate()); err != nil {
		return TransitionEvent{}, err
	}

	if !o.status.CanTransitionTo(target) {
		return TransitionEvent{}, errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	assignee, err := o.authorizeTransition(target, actor, workerID)
	if err != nil {
		return TransitionEvent{}, err
	}

	entry, err := NewHistoryEntry(target, actor, now)
	if err != nil {
		return TransitionEvent{}, err
	}

	event, err := NewTransitionEvent(o.id, o.status, target, actor, now)
	if err != nil {
		return TransitionEvent{}, err
	}

	if assignee != nil {
		o.workerID = assignee
	}
	o.status = target
	o.history = append(o.history, entry)

	return event, nil
}

// authorizeTransition checks the edge's authorization rule and, for
// assignment, resolves the worker to assign. It never mutates the order.
func (o *Order) authorizeTransition(
	target Status,
	actor kernel.Actor,
	workerID *kernel.UUID,
) (*kernel.UUID, error) {
	switch target {
	case Assigned:
		return o.authorizeAssign(actor, workerID)
	case InProgress:
		return nil, o.authorizeFulfillment(actor, "start order")
	case Completed:
		return nil, o.authorizeFulfillment(actor, "complete order")
	case Cancelled:
		return nil, o.authorizeCancel(actor)
	default:
		return nil, errs.NewInvalidTransitionError(o.status.String(), target.String())
	}
}

// authorizeAssign enforces first-claim-wins assignment: the order must be
// unassigned, a worker may only claim for itself, and an admin must name the
// worker explicitly.
func (o *Order) authorizeAssign(actor kernel.Actor, workerID *kernel.UUID) (*kernel.UUID, error) {
	if o.workerID != nil {
		return nil, errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), Assigned.String(),
			fmt.Errorf("order is already assigned to worker %s", o.workerID.String()),
		)
	}

	switch {
	case actor.Role().IsWorker():
		if workerID != nil && !workerID.IsEqual(actor.ID()) {
			return nil, errs.NewNotAuthorizedError("claim order for another worker")
		}
		id := actor.ID()
		return &id, nil

	case actor.Role().IsAdmin():
		if workerID == nil {
			return nil, errs.NewValueIsRequiredError("workerId")
		}
		if err := workerID.Validate(); err != nil {
			return nil, err
		}
		id := *workerID
		return &id, nil

	default:
		return nil, errs.NewNotAuthorizedError("assign order")
	}
}

// authorizeFulfillment permits the assigned worker or an admin.
func (o *Order) authorizeFulfillment(actor kernel.Actor, action string) error {
	if actor.Role().IsAdmin() {
		return nil
	}

	if actor.Role().IsWorker() && o.workerID != nil && o.workerID.IsEqual(actor.ID()) {
		return nil
	}

	return errs.NewNotAuthorizedError(action)
}

// authorizeCancel permits the owning client or an admin.
func (o *Order) authorizeCancel(actor kernel.Actor) error {
	if actor.Role().IsAdmin() {
		return nil
	}

	if actor.Role().IsClient() && o.clientID.IsEqual(actor.ID()) {
		return nil
	}

	return errs.NewNotAuthorizedError("cancel order")
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setClientID validates and sets the owning client identity.
// This is a private method used only during construction.
func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

// setServiceName validates and sets the requested service name.
// This is a private method used only during construction.
func (o *Order) setServiceName(serviceName string) error {
	if serviceName == "" {
		return errs.NewValueIsRequiredError("serviceName")
	}
	o.serviceName = serviceName
	return nil
}

// setPrice validates and sets the order's price.
// Price must be positive. This is a private method used only during construction.
func (o *Order) setPrice(price int) error {
	if price < 1 || price > maxPrice {
		return errs.NewValueIsOutOfRangeError("price", price, 1, maxPrice)
	}
	o.price = price
	return nil
}
