package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount with fixed-point
// semantics. It wraps github.com/shopspring/decimal so that order totals are
// never computed with floating-point arithmetic.
//
// Money is immutable: arithmetic methods return new values. Amounts may not
// be negative; subtotal, tax, shipping, discount, and total are all
// non-negative quantities in this domain.
//
// Example usage:
//
//	price, _ := kernel.NewMoneyFromString("19.99")
//	lineTotal := price.Mul(3)
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money value from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString parses a Money value from its decimal string
// representation, e.g. "19.99". Returns an error if the string is not a
// valid decimal or the amount is negative.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(amount)
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two Money values.
// The result may not be negative; Sub returns an error instead of
// producing a negative amount.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul returns the Money value multiplied by an integer quantity.
// Used to compute line totals from unit prices.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// MulRate returns the Money value multiplied by a decimal rate,
// rounded to 4 decimal places. Used to compute tax amounts.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(4)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
