package kernel

import (
	"fmt"

	"proxybuy/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// KRW is the default settlement currency of the platform.
var KRW = currency.KRW

// Money is a value object representing a monetary amount in a specific currency.
// Amounts use exact decimal arithmetic so fee computations never suffer floating
// point drift. Money is immutable; arithmetic methods return new values.
//
// The platform settles in currency minor units (KRW has none), so amounts are
// expected to be whole numbers in the common path, but the type does not forbid
// fractional amounts for currencies that have them.
type Money struct {
	amount decimal.Decimal
	unit   currency.Unit
}

// NewMoney creates a Money value from a decimal amount and currency unit.
func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{amount: amount, unit: unit}
}

// NewMoneyFromMinorUnits creates a Money value from an integer amount of
// currency minor units. This is the common constructor for KRW amounts.
func NewMoneyFromMinorUnits(amount int64, unit currency.Unit) Money {
	return Money{amount: decimal.NewFromInt(amount), unit: unit}
}

// MoneyFromString parses a Money value from its decimal string representation,
// typically when rehydrating from persistence.
func MoneyFromString(amount string, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}

	return Money{amount: d, unit: unit}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency unit.
func (m Money) Currency() currency.Unit {
	return m.unit
}

// CurrencyCode returns the ISO 4217 code, e.g. "KRW".
func (m Money) CurrencyCode() string {
	return m.unit.String()
}

// Add returns the sum of two Money values.
// Returns an error if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.unit != other.unit {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.unit, m.unit))
	}
	return Money{amount: m.amount.Add(other.amount), unit: m.unit}, nil
}

// MulInt returns the Money value multiplied by an integer quantity.
func (m Money) MulInt(quantity int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(quantity)), unit: m.unit}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two Money values have the same amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.unit == other.unit && m.amount.Equal(other.amount)
}

// String returns a human-readable representation, e.g. "111000 KRW".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.unit)
}
