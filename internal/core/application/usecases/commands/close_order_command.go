package commands

import (
	"errors"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/guard"
)

var ErrCloseOrderCommandIsNotConstructed = errors.New(
	"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
)

// CloseOrderCommand closes an order administratively, without a selection.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewCloseOrderCommand(orderID order.ID) (CloseOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CloseOrderCommand{}, err
	}
	return CloseOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

func (c CloseOrderCommand) OrderID() order.ID {
	return c.orderID
}
