// Package payment provides the Payment aggregate: the record of a monetary
// transaction tied to one order and, optionally, to the quote that authorized
// its amount.
//
// The payment gateway itself is an external collaborator; this package only
// models the record and its forward-only status. Gateway confirmations arrive
// asynchronously as Complete/Fail calls from the application layer.
package payment

import (
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment or RestorePayment factory functions.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment records one payment attempt for an order. Direct orders may skip a
// quote, so the quote reference is optional; when present, the service checks
// the amount against the quote's total before persisting.
type Payment struct {
	id                kernel.UUID
	orderID           kernel.UUID
	quoteID           *kernel.UUID
	amount            kernel.Money
	paymentMethod     string
	externalPaymentID string
	status            Status
	paidAt            *time.Time
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewPayment creates a pending payment record.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	quoteID *kernel.UUID,
	amount kernel.Money,
	paymentMethod string,
	now time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}
	if quoteID != nil {
		if err := quoteID.Validate(); err != nil {
			return nil, err
		}
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, errs.NewValueIsInvalidError("payment amount")
	}
	if paymentMethod == "" {
		return nil, errs.NewValueIsRequiredError("payment method")
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		quoteID:       quoteID,
		amount:        amount,
		paymentMethod: paymentMethod,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a payment record from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	quoteID *kernel.UUID,
	amount kernel.Money,
	paymentMethod string,
	externalPaymentID string,
	status Status,
	paidAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if quoteID != nil {
		if err := quoteID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Payment{
		id:                id,
		orderID:           orderID,
		quoteID:           quoteID,
		amount:            amount,
		paymentMethod:     paymentMethod,
		externalPaymentID: externalPaymentID,
		status:            status,
		paidAt:            paidAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Payment instance was created through a factory function.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order this payment belongs to.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// QuoteID returns the quote that authorized the amount, or nil for direct orders.
func (p *Payment) QuoteID() *kernel.UUID {
	return p.quoteID
}

// Amount returns the paid amount.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// PaymentMethod returns the payment method used.
func (p *Payment) PaymentMethod() string {
	return p.paymentMethod
}

// ExternalPaymentID returns the gateway transaction id, empty until confirmed.
func (p *Payment) ExternalPaymentID() string {
	return p.externalPaymentID
}

// Status returns the current payment status.
func (p *Payment) Status() Status {
	return p.status
}

// PaidAt returns the completion timestamp, or nil if not completed.
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// Complete marks the payment as confirmed by the gateway and records the
// transaction id and completion time.
func (p *Payment) Complete(externalPaymentID string, now time.Time) error {
	newStatus, err := p.status.Transition(StatusCompleted)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.externalPaymentID = externalPaymentID
	p.paidAt = &now
	p.updatedAt = now
	return nil
}

// Fail marks the payment as declined or failed.
func (p *Payment) Fail(externalPaymentID string, now time.Time) error {
	newStatus, err := p.status.Transition(StatusFailed)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.externalPaymentID = externalPaymentID
	p.updatedAt = now
	return nil
}

// Refund marks a completed payment as refunded.
func (p *Payment) Refund(now time.Time) error {
	newStatus, err := p.status.Transition(StatusRefunded)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.updatedAt = now
	return nil
}
