package services

import (
	"errors"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/errs"
)

var ErrSelectionIsNotConstructed = errors.New("selection must be created via NewSelection")

// Selection accepts one quote of an order. All checks run before any
// aggregate is touched, so a failed Apply leaves every aggregate unchanged.
//
// Checks, in order:
//   - the order is active, else InvalidStateError with the order snapshot
//   - the quote belongs to the order, else ObjectNotFoundError
//   - the quote is active, else InvalidStateError with the quote snapshot
//   - the quote still carries the expected provider name and price,
//     else ConflictError with the quote snapshot
//
// Example:
//
//	result, err := services.NewSelection(o, chosen, activeQuotes, "Carrier C", price).Apply(now)
type Selection struct {
	order            *order.Order
	chosen           *quote.Quote
	active           []*quote.Quote
	expectedProvider string
	expectedPrice    kernel.Price
}

// Result lists every aggregate Apply changed.
type Result struct {
	Order    *order.Order
	Selected *quote.Quote
	Expired  []*quote.Quote
}

// NewSelection builds the command. active holds the active quotes of the
// order; it may include chosen.
func NewSelection(
	o *order.Order,
	chosen *quote.Quote,
	active []*quote.Quote,
	expectedProvider string,
	expectedPrice kernel.Price,
) Selection {
	return Selection{
		order:            o,
		chosen:           chosen,
		active:           active,
		expectedProvider: expectedProvider,
		expectedPrice:    expectedPrice,
	}
}

func (s Selection) Apply(now time.Time) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}

	q := s.chosen
	if err := s.order.SelectQuote(order.Selection{
		QuoteID:  q.ID(),
		Provider: q.ProviderName(),
		Price:    q.Price(),
		At:       now,
	}); err != nil {
		return Result{}, err
	}
	if err := q.Select(now); err != nil {
		return Result{}, err
	}

	result := Result{Order: s.order, Selected: q}
	for _, sibling := range s.active {
		if sibling.ID().IsEqual(q.ID()) || !sibling.BelongsTo(s.order.ID()) || !sibling.Status().IsActive() {
			continue
		}
		if err := sibling.Expire(now); err != nil {
			return Result{}, err
		}
		result.Expired = append(result.Expired, sibling)
	}

	return result, nil
}

func (s Selection) check() error {
	if s.order.Validate() != nil || s.chosen.Validate() != nil {
		return ErrSelectionIsNotConstructed
	}
	if err := s.expectedPrice.Validate(); err != nil {
		return err
	}

	o, q := s.order, s.chosen
	if !o.Status().IsActive() {
		return errs.NewInvalidStateErrorWithCurrent("order", o.ID().String(), o.Status().String(), "select a quote for", o.Snapshot())
	}
	if !q.BelongsTo(o.ID()) {
		return errs.NewObjectNotFoundError("quote", q.ID().String())
	}
	if !q.Status().IsActive() {
		return errs.NewInvalidStateErrorWithCurrent("quote", q.ID().String(), q.Status().String(), "select", q.Snapshot())
	}
	if !q.Matches(s.expectedProvider, s.expectedPrice) {
		return errs.NewConflictError("quote", q.ID().String(), "provider or price changed since it was viewed", q.Snapshot())
	}
	return nil
}
