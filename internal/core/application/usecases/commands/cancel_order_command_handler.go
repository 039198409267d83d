package commands

import (
	"context"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
)

// CancelOrderCommandHandler cancels an active order and expires all of its
// active quotes in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.Identity
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, identity ports.Identity, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		clock:      clock,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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
	quoteRepo := uow.QuoteRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = authorizeOwner(ctx, h.identity, cmd.CallerID(), o, "cancel order "+o.ID().String()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.Cancel(now); err != nil {
		return nil, err
	}

	active, err := quoteRepo.GetAllActiveByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	for _, q := range active {
		if err = q.Expire(now); err != nil {
			return nil, err
		}
		if err = quoteRepo.Update(ctx, q); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
