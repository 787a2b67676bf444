package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"proxybuy/internal/pkg/errs"
)

// orderNumberPattern matches an uppercase alphanumeric prefix followed by a
// YYYYMMDD date stamp and a 4-digit random suffix, e.g. "HIKO202609014821".
var orderNumberPattern = regexp.MustCompile(`^[A-Z0-9]+\d{8}\d{4}$`)

// OrderNumber is the human-readable order identifier shown to users and
// operators. It is generated once at order creation and never mutated.
//
// Format: {PREFIX}{YYYYMMDD}{4-digit random}. The random suffix makes
// collisions unlikely but not impossible; callers handle the store's
// uniqueness violation by regenerating, not by surfacing an error.
type OrderNumber struct {
	value string
}

// GenerateOrderNumber creates a new order number for the given prefix and time.
// The suffix is a random number in [1000, 9999].
func GenerateOrderNumber(prefix string, now time.Time) (OrderNumber, error) {
	if prefix == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number prefix")
	}

	value := fmt.Sprintf("%s%s%04d", prefix, now.Format("20060102"), 1000+rand.IntN(9000))
	return OrderNumberFromString(value)
}

// OrderNumberFromString reconstitutes an order number from persistence.
// Returns a validation error if the value does not match the expected shape.
func OrderNumberFromString(value string) (OrderNumber, error) {
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}
	if !orderNumberPattern.MatchString(value) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match the expected format", value))
	}

	return OrderNumber{value: value}, nil
}

// String returns the order number text.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual reports whether two order numbers are the same.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate returns an error if the order number is the zero value.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("order number must be created via GenerateOrderNumber or OrderNumberFromString")
	}
	return nil
}
