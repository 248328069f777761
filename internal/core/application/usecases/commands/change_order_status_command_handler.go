package commands

import (
	"context"
	"time"

	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler handles order status changes: claiming,
// starting, completing and cancelling orders. The aggregate enforces the
// state machine and authorization rules; the handler provides the transaction
// boundary and post-commit event dispatch.
//
// The order row is locked for the duration of the transaction, so two
// concurrent changes to the same order serialize and the loser of a claim
// race observes the winner's assignment.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.EventDispatcher
}

// NewChangeOrderStatusCommandHandler creates a handler for status change operations.
// Requires an OrderUoWFactory for transactional persistence and an
// EventDispatcher for post-commit notification fan-out.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.EventDispatcher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the status change command.
// Loads the order under a row lock, applies the transition through the
// aggregate, persists the result, and dispatches the transition event only
// after a successful commit. Any domain rejection (undefined edge,
// unauthorized actor) rolls the transaction back and leaves the order
// untouched.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	event, err := aggregate.ApplyTransition(cmd.Target(), cmd.Actor(), cmd.WorkerID(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, event, aggregate)
	return nil
}
