package commands

import (
	"errors"
	"strings"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/guard"
)

var ErrSelectQuoteCommandIsNotConstructed = errors.New(
	"SelectQuoteCommand must be created via NewSelectQuoteCommand constructor",
)

// SelectQuoteCommand accepts a quote. expectedProvider and expectedPrice are
// what the shipper saw; the selection fails with a conflict if the quote was
// revised in the meantime.
type SelectQuoteCommand struct { //nolint:recvcheck //using for validation
	callerID         kernel.UUID
	orderID          order.ID
	quoteID          kernel.UUID
	expectedProvider string
	expectedPrice    kernel.Price

	guard guard.ConstructorGuard
}

func NewSelectQuoteCommand(
	callerID kernel.UUID,
	orderID order.ID,
	quoteID kernel.UUID,
	expectedProvider string,
	expectedPrice kernel.Price,
) (SelectQuoteCommand, error) {
	var providerErr error
	if strings.TrimSpace(expectedProvider) == "" {
		providerErr = errs.NewValueIsRequiredError("expected provider")
	}

	if err := errors.Join(
		callerID.Validate(),
		orderID.Validate(),
		quoteID.Validate(),
		providerErr,
		expectedPrice.Validate(),
	); err != nil {
		return SelectQuoteCommand{}, err
	}

	return SelectQuoteCommand{
		callerID:         callerID,
		orderID:          orderID,
		quoteID:          quoteID,
		expectedProvider: expectedProvider,
		expectedPrice:    expectedPrice,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c SelectQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSelectQuoteCommandIsNotConstructed)
}

func (c SelectQuoteCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c SelectQuoteCommand) OrderID() order.ID {
	return c.orderID
}

func (c SelectQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

func (c SelectQuoteCommand) ExpectedProvider() string {
	return c.expectedProvider
}

func (c SelectQuoteCommand) ExpectedPrice() kernel.Price {
	return c.expectedPrice
}
