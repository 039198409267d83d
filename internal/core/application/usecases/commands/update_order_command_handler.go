package commands

import (
	"context"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
)

// UpdateOrderCommandHandler edits an active order. Failures are reported in
// this order: not found, forbidden, invalid state, validation.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.Identity
	clock      ports.Clock
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, identity ports.Identity, clock ports.Clock) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		clock:      clock,
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = authorizeOwner(ctx, h.identity, cmd.CallerID(), o, "update order "+o.ID().String()); err != nil {
		return nil, err
	}

	if err = o.Update(cmd.Changes(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
