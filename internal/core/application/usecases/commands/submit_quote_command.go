package commands

import (
	"errors"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/domain/model/quote"
	"bidding/internal/pkg/guard"
)

var ErrSubmitQuoteCommandIsNotConstructed = errors.New(
	"SubmitQuoteCommand must be created via NewSubmitQuoteCommand constructor",
)

// SubmitQuoteCommand is a carrier's offer on an order. Submitting again for
// the same order revises the carrier's existing quote.
//
// Example:
//
//	price, _ := kernel.ParsePrice("16.90")
//	cmd, err := NewSubmitQuoteCommand(orderID, providerID, "Carrier C", price, "3 days", "")
type SubmitQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID    order.ID
	providerID kernel.UUID
	terms      quote.Terms

	guard guard.ConstructorGuard
}

func NewSubmitQuoteCommand(
	orderID order.ID,
	providerID kernel.UUID,
	providerName string,
	price kernel.Price,
	estimatedDelivery string,
	remarks string,
) (SubmitQuoteCommand, error) {
	terms := quote.Terms{
		ProviderName:      providerName,
		Price:             price,
		EstimatedDelivery: estimatedDelivery,
		Remarks:           remarks,
	}

	if err := errors.Join(
		orderID.Validate(),
		providerID.Validate(),
		terms.Validate(),
	); err != nil {
		return SubmitQuoteCommand{}, err
	}

	return SubmitQuoteCommand{
		orderID:    orderID,
		providerID: providerID,
		terms:      terms,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSubmitQuoteCommandIsNotConstructed)
}

func (c SubmitQuoteCommand) OrderID() order.ID {
	return c.orderID
}

func (c SubmitQuoteCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c SubmitQuoteCommand) Terms() quote.Terms {
	return c.terms
}
