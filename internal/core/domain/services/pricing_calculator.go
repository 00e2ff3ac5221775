package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingCalculator is a domain service that quotes the tax and shipping
// charges for an order subtotal. The tax rate and flat shipping fee come from
// configuration; the calculator keeps the arithmetic in fixed-point decimals
// end to end.
type PricingCalculator struct {
	taxRate     decimal.Decimal
	shippingFee kernel.Money
}

// NewPricingCalculator creates a PricingCalculator with the given tax rate
// (e.g. 0.0825 for 8.25%) and flat shipping fee. The rate may not be
// negative.
func NewPricingCalculator(taxRate decimal.Decimal, shippingFee kernel.Money) (PricingCalculator, error) {
	if taxRate.IsNegative() {
		return PricingCalculator{}, errs.NewValueIsInvalidErrorWithCause(
			"taxRate is invalid",
			fmt.Errorf("%s is negative", taxRate.String()),
		)
	}

	return PricingCalculator{
		taxRate:     taxRate,
		shippingFee: shippingFee,
	}, nil
}

// Tax returns the tax amount for a subtotal, rounded to 4 decimal places.
func (p PricingCalculator) Tax(subtotal kernel.Money) kernel.Money {
	return subtotal.MulRate(p.taxRate)
}

// ShippingFee returns the flat shipping charge. Orders with a zero subtotal
// ship for free; there is nothing to ship.
func (p PricingCalculator) ShippingFee(subtotal kernel.Money) kernel.Money {
	if subtotal.IsZero() {
		return kernel.ZeroMoney()
	}
	return p.shippingFee
}
