// Package quote provides the Quote aggregate: an operator-issued price
// proposal tied to one order, with its own approval protocol and an expiry
// deadline.
//
// Key business rules:
//   - The total amount always equals product cost + domestic shipping +
//     international shipping + fee; the invariant is enforced at construction
//   - validUntil is strictly after creation time
//   - A quote resolves to approved or rejected exactly once; approvedAt and
//     rejectedAt are mutually exclusive
//   - Approving or rejecting an expired quote fails with QuoteExpired rather
//     than silently succeeding
//   - An order may accumulate several quotes over time (re-quotes after
//     rejection or expiry), but at most one may be pending at a time; that
//     uniqueness is enforced by the store
package quote

import (
	"errors"
	"fmt"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
)

// ErrQuoteIsNotConstructed is returned when a Quote instance was not created
// through the NewQuote or RestoreQuote factory functions.
var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote or RestoreQuote")

// Quote is an operator-issued price proposal for one proxy-purchase order.
type Quote struct {
	id                    kernel.UUID
	orderID               kernel.UUID
	productCost           kernel.Money
	domesticShipping      kernel.Money
	internationalShipping kernel.Money
	fee                   kernel.Money
	totalAmount           kernel.Money
	paymentMethod         string
	approvalState         ApprovalState
	validUntil            time.Time
	approvedAt            *time.Time
	rejectedAt            *time.Time
	notes                 string
	createdAt             time.Time

	isConstructed bool
}

// NewQuote creates a pending quote for an order. The total is computed from
// the four cost components; validUntil must be strictly after now.
func NewQuote(
	id kernel.UUID,
	orderID kernel.UUID,
	productCost kernel.Money,
	domesticShipping kernel.Money,
	internationalShipping kernel.Money,
	fee kernel.Money,
	paymentMethod string,
	validUntil time.Time,
	notes string,
	now time.Time,
) (*Quote, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}
	if paymentMethod == "" {
		return nil, errs.NewValueIsRequiredError("payment method")
	}
	if !validUntil.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("validUntil",
			fmt.Errorf("deadline %s is not after creation time %s",
				validUntil.Format(time.RFC3339), now.Format(time.RFC3339)))
	}

	total, err := sumCosts(productCost, domesticShipping, internationalShipping, fee)
	if err != nil {
		return nil, err
	}

	return &Quote{
		id:                    id,
		orderID:               orderID,
		productCost:           productCost,
		domesticShipping:      domesticShipping,
		internationalShipping: internationalShipping,
		fee:                   fee,
		totalAmount:           total,
		paymentMethod:         paymentMethod,
		approvalState:         ApprovalStatePending,
		validUntil:            validUntil,
		notes:                 notes,
		createdAt:             now,
		isConstructed:         true,
	}, nil
}

// RestoreQuote reconstructs a quote from persistence. The stored total must
// still equal the sum of the cost components; a mismatch is a data-integrity
// error.
func RestoreQuote(
	id kernel.UUID,
	orderID kernel.UUID,
	productCost kernel.Money,
	domesticShipping kernel.Money,
	internationalShipping kernel.Money,
	fee kernel.Money,
	totalAmount kernel.Money,
	paymentMethod string,
	approvalState ApprovalState,
	validUntil time.Time,
	approvedAt *time.Time,
	rejectedAt *time.Time,
	notes string,
	createdAt time.Time,
) (*Quote, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		approvalState.Validate(),
	); err != nil {
		return nil, err
	}

	expected, err := sumCosts(productCost, domesticShipping, internationalShipping, fee)
	if err != nil {
		return nil, err
	}
	if !totalAmount.IsEqual(expected) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("stored total %s does not equal component sum %s", totalAmount, expected))
	}
	if approvedAt != nil && rejectedAt != nil {
		return nil, errs.NewValueIsInvalidError("approvedAt and rejectedAt are mutually exclusive")
	}

	return &Quote{
		id:                    id,
		orderID:               orderID,
		productCost:           productCost,
		domesticShipping:      domesticShipping,
		internationalShipping: internationalShipping,
		fee:                   fee,
		totalAmount:           totalAmount,
		paymentMethod:         paymentMethod,
		approvalState:         approvalState,
		validUntil:            validUntil,
		approvedAt:            approvedAt,
		rejectedAt:            rejectedAt,
		notes:                 notes,
		createdAt:             createdAt,
		isConstructed:         true,
	}, nil
}

func sumCosts(productCost, domesticShipping, internationalShipping, fee kernel.Money) (kernel.Money, error) {
	for _, component := range []struct {
		name  string
		value kernel.Money
	}{
		{"product cost", productCost},
		{"domestic shipping", domesticShipping},
		{"international shipping", internationalShipping},
		{"fee", fee},
	} {
		if component.value.IsNegative() {
			return kernel.Money{}, errs.NewValueIsInvalidError(component.name)
		}
	}

	total := productCost
	var err error
	for _, component := range []kernel.Money{domesticShipping, internationalShipping, fee} {
		total, err = total.Add(component)
		if err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// Validate ensures the Quote instance was created through a factory function.
func (q *Quote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrQuoteIsNotConstructed
	}
	return nil
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() kernel.UUID {
	return q.id
}

// OrderID returns the order this quote prices.
func (q *Quote) OrderID() kernel.UUID {
	return q.orderID
}

// ProductCost returns the product cost component.
func (q *Quote) ProductCost() kernel.Money {
	return q.productCost
}

// DomesticShipping returns the domestic shipping component.
func (q *Quote) DomesticShipping() kernel.Money {
	return q.domesticShipping
}

// InternationalShipping returns the international shipping component.
func (q *Quote) InternationalShipping() kernel.Money {
	return q.internationalShipping
}

// Fee returns the service fee component.
func (q *Quote) Fee() kernel.Money {
	return q.fee
}

// TotalAmount returns the authoritative total the user pays on approval.
func (q *Quote) TotalAmount() kernel.Money {
	return q.totalAmount
}

// PaymentMethod returns the proposed payment method.
func (q *Quote) PaymentMethod() string {
	return q.paymentMethod
}

// ApprovalState returns the current decision state.
func (q *Quote) ApprovalState() ApprovalState {
	return q.approvalState
}

// ValidUntil returns the expiry deadline.
func (q *Quote) ValidUntil() time.Time {
	return q.validUntil
}

// ApprovedAt returns when the quote was approved, or nil.
func (q *Quote) ApprovedAt() *time.Time {
	return q.approvedAt
}

// RejectedAt returns when the quote was rejected, or nil.
func (q *Quote) RejectedAt() *time.Time {
	return q.rejectedAt
}

// Notes returns the operator's free-text notes.
func (q *Quote) Notes() string {
	return q.notes
}

// CreatedAt returns the creation timestamp.
func (q *Quote) CreatedAt() time.Time {
	return q.createdAt
}

// IsExpired reports whether the validity deadline has passed. Expiry only
// matters while pending; a resolved quote keeps its resolution.
func (q *Quote) IsExpired(now time.Time) bool {
	return now.After(q.validUntil)
}

// Approve resolves the quote to approved. Fails with QuoteExpired if the
// deadline has passed and with QuoteAlreadyResolved if the quote is no longer
// pending. On failure the approval state is left unchanged.
func (q *Quote) Approve(now time.Time) error {
	if err := q.ensurePending(now); err != nil {
		return err
	}

	q.approvalState = ApprovalStateApproved
	q.approvedAt = &now
	return nil
}

// Reject resolves the quote to rejected with an optional reason appended to
// the notes. Same guard conditions as Approve. Rejecting a quote does not
// change the order's status; the operator re-quotes or cancels.
func (q *Quote) Reject(now time.Time, reason string) error {
	if err := q.ensurePending(now); err != nil {
		return err
	}

	q.approvalState = ApprovalStateRejected
	q.rejectedAt = &now
	if reason != "" {
		if q.notes != "" {
			q.notes += "\n"
		}
		q.notes += "rejected: " + reason
	}
	return nil
}

func (q *Quote) ensurePending(now time.Time) error {
	if q.approvalState.IsResolved() {
		return errs.NewQuoteAlreadyResolvedError(q.id.String(), q.approvalState.String())
	}
	if q.IsExpired(now) {
		return errs.NewQuoteExpiredError(q.id.String(), q.validUntil.Format(time.RFC3339))
	}
	return nil
}
