package commands

import (
	"errors"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is a partial edit of an active order by its owner.
// Blank values are rejected by the handler after the order was found, the
// caller was authorized and the order was confirmed active.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	callerID kernel.UUID
	orderID  order.ID
	changes  order.Changes

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(callerID kernel.UUID, orderID order.ID, changes order.Changes) (UpdateOrderCommand, error) {
	if err := errors.Join(callerID.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		callerID: callerID,
		orderID:  orderID,
		changes:  changes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c UpdateOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c UpdateOrderCommand) Changes() order.Changes {
	return c.changes
}
