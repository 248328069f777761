package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request by a client to place a new order.
// Encapsulates the requested service, optional details and the price.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, clientID, "apartment cleaning", "two rooms", 4500)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatcher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	clientID    kernel.UUID
	serviceName string
	description string
	price       int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both identifiers are valid, the service name is not empty,
// and the price is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	serviceName string,
	description string,
	price int,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setClientID(clientID),
		orderCommand.setServiceName(serviceName),
		orderCommand.setPrice(price),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the identity of the client placing the order.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// ServiceName returns the name of the requested service.
func (c CreateOrderCommand) ServiceName() string {
	return c.serviceName
}

// Description returns the optional order details.
func (c CreateOrderCommand) Description() string {
	return c.description
}

// Price returns the service price in the smallest currency unit.
func (c CreateOrderCommand) Price() int {
	return c.price
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setServiceName(serviceName string) error {
	if serviceName == "" {
		return errs.NewValueIsRequiredError("serviceName")
	}

	c.serviceName = serviceName
	return nil
}

func (c *CreateOrderCommand) setPrice(price int) error {
	if price <= 0 {
		return errs.NewValueIsInvalidError("price")
	}

	c.price = price
	return nil
}
