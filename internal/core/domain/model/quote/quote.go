package quote

import (
	"errors"
	"strings"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/ddd"
	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/guard"
)

var ErrQuoteIsNotConstructed = errors.New("quote must be created via NewQuote or RestoreQuote")

// Terms are the provider-editable fields of a quote.
type Terms struct {
	ProviderName      string
	Price             kernel.Price
	EstimatedDelivery string
	Remarks           string
}

func (t Terms) Validate() error {
	var errList []error
	if strings.TrimSpace(t.ProviderName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("provider name"))
	}
	if err := t.Price.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(t.EstimatedDelivery) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("estimated delivery"))
	}
	return errors.Join(errList...)
}

// Quote is a carrier's offer on one order.
type Quote struct {
	ddd.EventRecorder

	id         kernel.UUID
	orderID    order.ID
	providerID kernel.UUID
	terms      Terms
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewQuote creates an active quote and records a Submitted event.
func NewQuote(id kernel.UUID, orderID order.ID, providerID kernel.UUID, terms Terms, now time.Time) (*Quote, error) {
	q := &Quote{
		status:    Active,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setIdentity(id, orderID, providerID),
		q.setTerms(terms),
	); err != nil {
		return nil, err
	}

	q.RaiseDomainEvent(NewSubmittedEvent(q, false))
	return q, nil
}

// RestoreQuote rehydrates a quote from persistence without raising events.
func RestoreQuote(
	id kernel.UUID,
	orderID order.ID,
	providerID kernel.UUID,
	terms Terms,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Quote, error) {
	q := &Quote{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	var statusErr error
	if statusErr = status.Validate(); statusErr == nil {
		q.status = status
	}

	if err := errors.Join(
		q.setIdentity(id, orderID, providerID),
		q.setTerms(terms),
		statusErr,
	); err != nil {
		return nil, err
	}

	return q, nil
}

func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

func (q *Quote) ID() kernel.UUID {
	return q.id
}

func (q *Quote) OrderID() order.ID {
	return q.orderID
}

func (q *Quote) ProviderID() kernel.UUID {
	return q.providerID
}

func (q *Quote) Terms() Terms {
	return q.terms
}

func (q *Quote) ProviderName() string {
	return q.terms.ProviderName
}

func (q *Quote) Price() kernel.Price {
	return q.terms.Price
}

func (q *Quote) Status() Status {
	return q.status
}

func (q *Quote) CreatedAt() time.Time {
	return q.createdAt
}

func (q *Quote) UpdatedAt() time.Time {
	return q.updatedAt
}

func (q *Quote) BelongsTo(orderID order.ID) bool {
	return q.orderID.IsEqual(orderID)
}

// Matches reports whether the quote still carries the provider name and
// price the shipper saw when choosing it.
func (q *Quote) Matches(providerName string, price kernel.Price) bool {
	return q.terms.ProviderName == providerName && q.terms.Price.IsEqual(price)
}

// Revise overwrites the terms of an active quote. Identity and createdAt
// are kept.
func (q *Quote) Revise(terms Terms, now time.Time) error {
	if !q.status.IsActive() {
		return q.invalidState("revise")
	}
	if err := terms.Validate(); err != nil {
		return err
	}

	q.terms = terms
	q.updatedAt = now
	q.RaiseDomainEvent(NewSubmittedEvent(q, true))
	return nil
}

func (q *Quote) Select(now time.Time) error {
	return q.transition(Selected, "select", now)
}

func (q *Quote) Expire(now time.Time) error {
	return q.transition(Expired, "expire", now)
}

func (q *Quote) transition(next Status, action string, now time.Time) error {
	if !q.status.CanTransitionTo(next) {
		return q.invalidState(action)
	}
	q.status = next
	q.updatedAt = now
	return nil
}

func (q *Quote) invalidState(action string) error {
	return errs.NewInvalidStateErrorWithCurrent("quote", q.id.String(), q.status.String(), action, q.Snapshot())
}

func (q *Quote) setIdentity(id kernel.UUID, orderID order.ID, providerID kernel.UUID) error {
	var providerErr error
	if err := providerID.Validate(); err != nil {
		providerErr = errs.NewValueIsRequiredErrorWithCause("provider", err)
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), providerErr); err != nil {
		return err
	}
	q.id = id
	q.orderID = orderID
	q.providerID = providerID
	return nil
}

func (q *Quote) setTerms(terms Terms) error {
	if err := terms.Validate(); err != nil {
		return err
	}
	q.terms = terms
	return nil
}
