package commands

import (
	"context"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"
	"bidding/internal/observability"
)

// CreateOrderCommandHandler allocates an identifier and persists a new
// active order.
//
// The identifier is allocated in its own short transaction before the order
// transaction opens. If the order transaction then fails the sequence number
// is lost, leaving a gap; it is never handed out again.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  IDAllocator
	clock      ports.Clock
	metrics    *observability.Metrics
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	allocator IDAllocator,
	clock ports.Clock,
	metrics *observability.Metrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		clock:      clock,
		metrics:    metrics,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	id, err := h.allocator.Allocate(ctx, now)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(id, cmd.OwnerID(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderCreated()
	return o, nil
}
