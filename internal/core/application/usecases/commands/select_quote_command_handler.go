package commands

import (
	"context"
	"errors"

	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/services"
	"bidding/internal/core/ports"
	"bidding/internal/observability"
	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/retry"

	"go.uber.org/zap"
)

const selectQuoteOperation = "select_quote"

// SelectQuoteCommandHandler accepts a quote: in one transaction the order is
// closed with the selection, the chosen quote is selected and every other
// active quote of the order expires. Either all three effects are committed
// or none.
//
// The order row is locked first, so two concurrent selections on the same
// order serialize: the second one observes the closed order and fails with
// an InvalidStateError. The whole transaction is retried on transient store
// errors.
type SelectQuoteCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.Identity
	clock      ports.Clock
	policy     retry.Policy
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewSelectQuoteCommandHandler(
	uowFactory UoWFactory,
	identity ports.Identity,
	clock ports.Clock,
	policy retry.Policy,
	metrics *observability.Metrics,
	logger *zap.Logger,
) SelectQuoteCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SelectQuoteCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		clock:      clock,
		policy:     policy,
		metrics:    metrics,
		logger:     logger,
	}
}

func (h SelectQuoteCommandHandler) Handle(ctx context.Context, cmd SelectQuoteCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	policy := h.policy.WithOnRetry(func(attempt uint64, err error) {
		h.metrics.StoreRetry(selectQuoteOperation)
		h.logger.Warn("retrying quote selection",
			zap.String("order_id", cmd.OrderID().String()),
			zap.Uint64("attempt", attempt),
			zap.Error(err),
		)
	})

	var selected *order.Order
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		var selectErr error
		selected, selectErr = h.selectOnce(ctx, cmd)
		return selectErr
	})

	switch {
	case err == nil:
		h.metrics.Selection(observability.SelectionSucceeded)
	case errors.Is(err, errs.ErrTransientStore), errors.Is(err, errs.ErrFatalStore):
		h.metrics.Selection(observability.SelectionFailed)
	default:
		h.metrics.Selection(observability.SelectionRejected)
	}
	if err != nil {
		return nil, err
	}

	return selected, nil
}

func (h SelectQuoteCommandHandler) selectOnce(ctx context.Context, cmd SelectQuoteCommand) (*order.Order, error) {
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

	if err = authorizeOwner(ctx, h.identity, cmd.CallerID(), o, "select quotes on order "+o.ID().String()); err != nil {
		return nil, err
	}
	if !o.Status().IsActive() {
		return nil, errs.NewInvalidStateErrorWithCurrent("order", o.ID().String(), o.Status().String(), "select a quote for", o.Snapshot())
	}

	chosen, err := quoteRepo.GetForUpdate(ctx, cmd.QuoteID())
	if err != nil {
		return nil, err
	}

	active, err := quoteRepo.GetAllActiveByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	result, err := services.NewSelection(o, chosen, active, cmd.ExpectedProvider(), cmd.ExpectedPrice()).
		Apply(h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, result.Order); err != nil {
		return nil, err
	}

	if err = quoteRepo.Update(ctx, result.Selected); err != nil {
		return nil, err
	}

	for _, q := range result.Expired {
		if err = quoteRepo.Update(ctx, q); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result.Order, nil
}
