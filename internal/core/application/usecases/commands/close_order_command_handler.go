package commands

import (
	"context"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
)

type CloseOrderResult struct {
	Order *order.Order
	// AlreadyClosed is set when the order was closed before this call; the
	// stored state was not modified.
	AlreadyClosed bool
}

// CloseOrderCommandHandler closes an active order. It is idempotent:
// closing a closed order succeeds and leaves it untouched.
type CloseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCloseOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) (CloseOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CloseOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CloseOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CloseOrderResult{}, err
	}

	alreadyClosed, err := o.Close(h.clock.Now())
	if err != nil {
		return CloseOrderResult{}, err
	}
	if alreadyClosed {
		return CloseOrderResult{Order: o, AlreadyClosed: true}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return CloseOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CloseOrderResult{}, err
	}

	return CloseOrderResult{Order: o}, nil
}
