package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand registers a pending payment attempt for an order.
// When quoteID is set the amount must match that quote's total.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID     kernel.UUID
	orderID       kernel.UUID
	quoteID       *kernel.UUID
	amount        kernel.Money
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment attempt.
func NewRecordPaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	quoteID *kernel.UUID,
	amount kernel.Money,
	paymentMethod string,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setOrderID(orderID),
		cmd.setQuoteID(quoteID),
		cmd.setAmount(amount),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier assigned to the new payment record.
func (c RecordPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the paid order's identifier.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// QuoteID returns the approved quote being paid, or nil for a direct payment.
func (c RecordPaymentCommand) QuoteID() *kernel.UUID {
	return c.quoteID
}

// Amount returns the payment amount.
func (c RecordPaymentCommand) Amount() kernel.Money {
	return c.amount
}

// PaymentMethod returns how the user is paying.
func (c RecordPaymentCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *RecordPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setQuoteID(quoteID *kernel.UUID) error {
	if quoteID == nil {
		return nil
	}
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount kernel.Money) error {
	if amount.IsNegative() || amount.IsZero() {
		return errs.NewValueIsInvalidError("payment amount")
	}
	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	c.paymentMethod = paymentMethod
	return nil
}
