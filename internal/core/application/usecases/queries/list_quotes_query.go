package queries

import (
	"errors"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/guard"
)

var (
	ErrListQuotesQueryIsNotConstructed = errors.New(
		"ListQuotesQuery must be created via NewListQuotesQuery constructor",
	)
	ErrLowestQuoteQueryIsNotConstructed = errors.New(
		"LowestQuoteQuery must be created via NewLowestQuoteQuery constructor",
	)
)

// ListQuotesQuery lists every quote of an order, cheapest first. Equal prices
// are ordered by submission time, then by quote id, so the order is the same
// on every call.
type ListQuotesQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewListQuotesQuery(orderID order.ID) (ListQuotesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListQuotesQuery{}, err
	}
	return ListQuotesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListQuotesQuery) Validate() error {
	return q.guard.Validate(ErrListQuotesQueryIsNotConstructed)
}

func (q ListQuotesQuery) OrderID() order.ID {
	return q.orderID
}

// LowestQuoteQuery returns the first quote ListQuotesQuery would return.
type LowestQuoteQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewLowestQuoteQuery(orderID order.ID) (LowestQuoteQuery, error) {
	if err := orderID.Validate(); err != nil {
		return LowestQuoteQuery{}, err
	}
	return LowestQuoteQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q LowestQuoteQuery) Validate() error {
	return q.guard.Validate(ErrLowestQuoteQueryIsNotConstructed)
}

func (q LowestQuoteQuery) OrderID() order.ID {
	return q.orderID
}

type QuoteResponse struct {
	ID                kernel.UUID
	OrderID           order.ID
	ProviderID        kernel.UUID
	ProviderName      string
	Price             kernel.Price
	EstimatedDelivery string
	Remarks           string
	Status            quote.Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
