package commands

import (
	"context"
	"errors"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/core/ports"
	"bidding/internal/observability"
	"bidding/internal/pkg/errs"
)

// SubmitQuoteCommandHandler creates or revises the caller's quote on an
// active order.
//
// The order row is read under a shared lock: submissions on the same order
// run in parallel, while a selection holding the exclusive lock makes them
// wait and then observe the closed order.
type SubmitQuoteCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.Identity
	clock      ports.Clock
	metrics    *observability.Metrics
}

func NewSubmitQuoteCommandHandler(
	uowFactory UoWFactory,
	identity ports.Identity,
	clock ports.Clock,
	metrics *observability.Metrics,
) SubmitQuoteCommandHandler {
	return SubmitQuoteCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		clock:      clock,
		metrics:    metrics,
	}
}

// Handle returns the quote as stored. Concurrent submissions by the same
// carrier resolve last-writer-wins.
func (h SubmitQuoteCommandHandler) Handle(ctx context.Context, cmd SubmitQuoteCommand) (*quote.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	active, err := h.identity.IsActiveProvider(ctx, cmd.ProviderID())
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errs.NewForbiddenError("provider "+cmd.ProviderID().String(), "submit quotes")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForShare(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.Status().IsActive() {
		return nil, errs.NewInvalidStateErrorWithCurrent("order", o.ID().String(), o.Status().String(), "quote on", o.Snapshot())
	}

	now := h.clock.Now()
	quoteRepo := uow.QuoteRepository()

	q, revision, err := h.prepare(ctx, quoteRepo, cmd, now)
	if err != nil {
		return nil, err
	}

	stored, err := quoteRepo.Save(ctx, q)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.QuoteSubmitted(revision || !stored.ID().IsEqual(q.ID()))
	return stored, nil
}

func (h SubmitQuoteCommandHandler) prepare(
	ctx context.Context,
	quoteRepo ports.QuoteRepository,
	cmd SubmitQuoteCommand,
	now time.Time,
) (*quote.Quote, bool, error) {
	existing, err := quoteRepo.GetByOrderAndProvider(ctx, cmd.OrderID(), cmd.ProviderID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		q, newErr := quote.NewQuote(kernel.NewUUID(), cmd.OrderID(), cmd.ProviderID(), cmd.Terms(), now)
		return q, false, newErr
	case err != nil:
		return nil, false, err
	}

	if err = existing.Revise(cmd.Terms(), now); err != nil {
		return nil, false, err
	}
	return existing, true, nil
}
