package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in "created" status with an initial history entry and
// announces the new order to connected subscribers after the commit.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatcher)
//	orderID := kernel.NewUUID()
//	cmd, _ := NewCreateOrderCommand(orderID, clientID, "apartment cleaning", "", 4500)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now created and visible to workers awaiting claims
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.EventDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and an
// EventDispatcher for post-commit notification fan-out.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.EventDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order creation command.
// Persists the new order inside a transaction and, only after a successful
// commit, dispatches a creation event so subscribers never observe an order
// that was rolled back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		cmd.ServiceName(),
		cmd.Description(),
		cmd.Price(),
		now,
	)
	if err != nil {
		return err
	}

	client, err := kernel.NewActor(cmd.ClientID(), kernel.RoleClient)
	if err != nil {
		return err
	}

	event, err := order.NewTransitionEvent(aggregate.ID(), order.Unknown, order.Created, client, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, event, aggregate)
	return nil
}
