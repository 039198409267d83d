package commands

import (
	"errors"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an active order on behalf of its owner.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	callerID kernel.UUID
	orderID  order.ID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(callerID kernel.UUID, orderID order.ID) (CancelOrderCommand, error) {
	if err := errors.Join(callerID.Validate(), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{callerID: callerID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c CancelOrderCommand) OrderID() order.ID {
	return c.orderID
}
