package kernel

import (
	"fmt"

	"bidding/internal/pkg/errs"
	"bidding/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a Price keeps.
const PriceScale = 2

var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError("Price must be created via NewPrice or ParsePrice")

// Price is a non-negative amount in the marketplace currency with at most
// PriceScale fractional digits. Two prices are equal when their amounts are
// equal regardless of trailing zeros (16.9 == 16.90).
type Price struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewPrice validates amount. Amounts that need more than PriceScale
// fractional digits are rejected, never rounded.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is less than 0", amount.String()),
		)
	}
	rounded := amount.Round(PriceScale)
	if !rounded.Equal(amount) {
		return Price{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), PriceScale),
		)
	}
	return Price{
		amount: rounded,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ParsePrice parses a decimal string such as "16.90".
func ParsePrice(s string) (Price, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return NewPrice(amount)
}

// MustParsePrice is ParsePrice for constants and tests. It panics on invalid input.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal returns the amount for persistence and arithmetic.
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// String renders the amount with exactly PriceScale fractional digits.
func (p Price) String() string {
	return p.amount.StringFixed(PriceScale)
}

func (p Price) IsEqual(other Price) bool {
	return p.amount.Equal(other.amount)
}

// Cmp returns -1, 0 or +1 as p is less than, equal to, or greater than other.
func (p Price) Cmp(other Price) int {
	return p.amount.Cmp(other.amount)
}

func (p Price) Validate() error {
	return p.guard.Validate(ErrPriceIsNotConstructed)
}
