package order

import (
	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
)

// ProductSnapshot captures the product a user asked the operator to buy, as it
// looked at submission time. It may reference a tracked hotdeal or describe an
// ad-hoc product pasted in by the user; either way the snapshot is frozen on
// the order so later marketplace changes do not rewrite history.
type ProductSnapshot struct {
	title     string
	unitPrice kernel.Money
	sourceURL string
	hotdealID *kernel.UUID
}

// NewProductSnapshot creates a validated product snapshot.
// Title is required; unit price must not be negative; sourceURL and hotdealID
// are optional.
func NewProductSnapshot(title string, unitPrice kernel.Money, sourceURL string, hotdealID *kernel.UUID) (ProductSnapshot, error) {
	if title == "" {
		return ProductSnapshot{}, errs.NewValueIsRequiredError("product title")
	}
	if unitPrice.IsNegative() {
		return ProductSnapshot{}, errs.NewValueIsInvalidError("product unit price")
	}
	if hotdealID != nil {
		if err := hotdealID.Validate(); err != nil {
			return ProductSnapshot{}, err
		}
	}

	return ProductSnapshot{
		title:     title,
		unitPrice: unitPrice,
		sourceURL: sourceURL,
		hotdealID: hotdealID,
	}, nil
}

// Title returns the product title.
func (p ProductSnapshot) Title() string {
	return p.title
}

// UnitPrice returns the per-unit price at submission time.
func (p ProductSnapshot) UnitPrice() kernel.Money {
	return p.unitPrice
}

// SourceURL returns the marketplace URL, if one was provided.
func (p ProductSnapshot) SourceURL() string {
	return p.sourceURL
}

// HotdealID returns the referenced hotdeal, or nil for ad-hoc products.
func (p ProductSnapshot) HotdealID() *kernel.UUID {
	return p.hotdealID
}

// PriceEstimate is the display-only price breakdown computed at order creation
// or amendment. The authoritative total for payment comes from the approved
// Quote, not from this estimate.
type PriceEstimate struct {
	Subtotal   kernel.Money
	ServiceFee kernel.Money
	Shipping   kernel.Money
	Total      kernel.Money
}
