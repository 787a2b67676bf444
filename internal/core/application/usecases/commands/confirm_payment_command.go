package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand carries the payment gateway's callback verdict for a
// pending payment.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID         kernel.UUID
	externalPaymentID string
	success           bool

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to settle a pending payment.
func NewConfirmPaymentCommand(
	paymentID kernel.UUID,
	externalPaymentID string,
	success bool,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		success: success,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setExternalPaymentID(externalPaymentID),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentID returns the pending payment's identifier.
func (c ConfirmPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// ExternalPaymentID returns the gateway's transaction reference.
func (c ConfirmPaymentCommand) ExternalPaymentID() string {
	return c.externalPaymentID
}

// Success reports whether the gateway confirmed the payment.
func (c ConfirmPaymentCommand) Success() bool {
	return c.success
}

func (c *ConfirmPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *ConfirmPaymentCommand) setExternalPaymentID(externalPaymentID string) error {
	if externalPaymentID == "" {
		return errs.NewValueIsRequiredError("external payment id")
	}
	c.externalPaymentID = externalPaymentID
	return nil
}
