// Package services provides domain services that implement business logic
// spanning multiple entities in the proxy-purchase system.
//
// The package includes:
//   - FeePolicy: the pure pricing service shared by every order-entry surface
package services

import (
	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// serviceFeeRate is the platform's service commission on the product subtotal.
var serviceFeeRate = decimal.NewFromFloat(0.08)

// FeePolicy computes the service fee, domestic shipping, and total for a
// product subtotal. It is a pure computation with no side effects and no
// stored state beyond its configuration.
//
// The minimum service fee and the flat domestic shipping fee are deployment
// configuration injected once at construction; call sites never carry their
// own constants. Degenerate inputs (zero or negative subtotal) clamp to a
// zero fee and zero shipping, never negative.
type FeePolicy struct {
	minServiceFee       kernel.Money
	domesticShippingFee kernel.Money
	unit                currency.Unit
}

// OrderLine is one product line of a multi-line order.
type OrderLine struct {
	UnitPrice kernel.Money
	Quantity  int
}

// NewFeePolicy creates a fee policy for the given deployment configuration.
// Amounts are currency minor units and must not be negative.
func NewFeePolicy(minServiceFee, domesticShippingFee int64, unit currency.Unit) (FeePolicy, error) {
	if minServiceFee < 0 {
		return FeePolicy{}, errs.NewValueIsInvalidError("minimum service fee")
	}
	if domesticShippingFee < 0 {
		return FeePolicy{}, errs.NewValueIsInvalidError("domestic shipping fee")
	}

	return FeePolicy{
		minServiceFee:       kernel.NewMoneyFromMinorUnits(minServiceFee, unit),
		domesticShippingFee: kernel.NewMoneyFromMinorUnits(domesticShippingFee, unit),
		unit:                unit,
	}, nil
}

// Subtotal returns unitPrice * quantity, clamped at zero.
func (f FeePolicy) Subtotal(unitPrice kernel.Money, quantity int) kernel.Money {
	subtotal := unitPrice.MulInt(int64(quantity))
	if subtotal.IsNegative() {
		return kernel.NewMoneyFromMinorUnits(0, f.unit)
	}
	return subtotal
}

// SubtotalLines returns the sum over all lines of unitPrice * quantity,
// clamped at zero.
func (f FeePolicy) SubtotalLines(lines []OrderLine) (kernel.Money, error) {
	subtotal := kernel.NewMoneyFromMinorUnits(0, f.unit)

	var err error
	for _, line := range lines {
		subtotal, err = subtotal.Add(line.UnitPrice.MulInt(int64(line.Quantity)))
		if err != nil {
			return kernel.Money{}, err
		}
	}

	if subtotal.IsNegative() {
		return kernel.NewMoneyFromMinorUnits(0, f.unit), nil
	}
	return subtotal, nil
}

// ServiceFee returns max(round(subtotal * 8%), minimum fee) for a positive
// subtotal, and zero otherwise.
func (f FeePolicy) ServiceFee(subtotal kernel.Money) kernel.Money {
	if subtotal.IsNegative() || subtotal.IsZero() {
		return kernel.NewMoneyFromMinorUnits(0, f.unit)
	}

	fee := subtotal.Amount().Mul(serviceFeeRate).Round(0)
	if fee.LessThan(f.minServiceFee.Amount()) {
		return f.minServiceFee
	}
	return kernel.NewMoney(fee, f.unit)
}

// DomesticShipping returns the flat shipping fee for a positive subtotal,
// and zero otherwise.
func (f FeePolicy) DomesticShipping(subtotal kernel.Money) kernel.Money {
	if subtotal.IsNegative() || subtotal.IsZero() {
		return kernel.NewMoneyFromMinorUnits(0, f.unit)
	}
	return f.domesticShippingFee
}

// Total returns subtotal + fee + shipping exactly.
func (f FeePolicy) Total(subtotal, fee, shipping kernel.Money) (kernel.Money, error) {
	total, err := subtotal.Add(fee)
	if err != nil {
		return kernel.Money{}, err
	}
	return total.Add(shipping)
}

// Estimate computes the full price breakdown for one product line. The result
// is the display-only snapshot stored on the order; the authoritative total
// comes from the eventual quote.
func (f FeePolicy) Estimate(unitPrice kernel.Money, quantity int) (order.PriceEstimate, error) {
	subtotal := f.Subtotal(unitPrice, quantity)
	fee := f.ServiceFee(subtotal)
	shipping := f.DomesticShipping(subtotal)

	total, err := f.Total(subtotal, fee, shipping)
	if err != nil {
		return order.PriceEstimate{}, err
	}

	return order.PriceEstimate{
		Subtotal:   subtotal,
		ServiceFee: fee,
		Shipping:   shipping,
		Total:      total,
	}, nil
}
