package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// status on behalf of an authenticated actor. For assignment by an admin the
// command additionally carries the worker to assign.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Assigned, worker, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, dispatcher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	actor    kernel.Actor
	workerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// Validates the order identifier, the target status and the acting identity.
// workerID is optional and only meaningful for assignment; when present it
// must be a valid identifier.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor kernel.Actor,
	workerID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	statusCommand := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setTarget(target),
		statusCommand.setActor(actor),
		statusCommand.setWorkerID(workerID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to change.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns the authenticated identity requesting the change.
func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

// WorkerID returns the worker to assign, or nil when not provided.
func (c ChangeOrderStatusCommand) WorkerID() *kernel.UUID {
	if c.workerID == nil {
		return nil
	}
	w := *c.workerID
	return &w
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setWorkerID(workerID *kernel.UUID) error {
	if workerID == nil {
		return nil
	}

	if err := workerID.Validate(); err != nil {
		return err
	}

	w := *workerID
	c.workerID = &w
	return nil
}
