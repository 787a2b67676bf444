package commands

import (
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrCreateQuoteCommandIsNotConstructed = errors.New(
	"CreateQuoteCommand must be created via NewCreateQuoteCommand constructor",
)

// CreateQuoteCommand is the operator's price proposal for an order. The fee
// component is optional; when nil the handler computes it from the fee policy.
type CreateQuoteCommand struct { //nolint:recvcheck //using for validation
	quoteID               kernel.UUID
	orderID               kernel.UUID
	actor                 kernel.UUID
	productCost           kernel.Money
	domesticShipping      kernel.Money
	internationalShipping kernel.Money
	fee                   *kernel.Money
	paymentMethod         string
	validUntil            time.Time
	notes                 string

	guard guard.ConstructorGuard
}

// NewCreateQuoteCommand creates a command to issue a quote for an order.
func NewCreateQuoteCommand(
	quoteID kernel.UUID,
	orderID kernel.UUID,
	actor kernel.UUID,
	productCost kernel.Money,
	domesticShipping kernel.Money,
	internationalShipping kernel.Money,
	fee *kernel.Money,
	paymentMethod string,
	validUntil time.Time,
	notes string,
) (CreateQuoteCommand, error) {
	cmd := CreateQuoteCommand{
		productCost:           productCost,
		domesticShipping:      domesticShipping,
		internationalShipping: internationalShipping,
		fee:                   fee,
		validUntil:            validUntil,
		notes:                 notes,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setQuoteID(quoteID),
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteCommandIsNotConstructed)
}

// QuoteID returns the identifier assigned to the new quote.
func (c CreateQuoteCommand) QuoteID() kernel.UUID {
	return c.quoteID
}

// OrderID returns the quoted order's identifier.
func (c CreateQuoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the operator issuing the quote.
func (c CreateQuoteCommand) Actor() kernel.UUID {
	return c.actor
}

// ProductCost returns the quoted product cost.
func (c CreateQuoteCommand) ProductCost() kernel.Money {
	return c.productCost
}

// DomesticShipping returns the quoted domestic shipping cost.
func (c CreateQuoteCommand) DomesticShipping() kernel.Money {
	return c.domesticShipping
}

// InternationalShipping returns the quoted international shipping cost.
func (c CreateQuoteCommand) InternationalShipping() kernel.Money {
	return c.internationalShipping
}

// Fee returns the operator's fee override, or nil to use the fee policy.
func (c CreateQuoteCommand) Fee() *kernel.Money {
	return c.fee
}

// PaymentMethod returns the payment method the user should pay with.
func (c CreateQuoteCommand) PaymentMethod() string {
	return c.paymentMethod
}

// ValidUntil returns the quote's validity deadline.
func (c CreateQuoteCommand) ValidUntil() time.Time {
	return c.validUntil
}

// Notes returns the operator's optional notes.
func (c CreateQuoteCommand) Notes() string {
	return c.notes
}

func (c *CreateQuoteCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *CreateQuoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateQuoteCommand) setActor(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateQuoteCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	c.paymentMethod = paymentMethod
	return nil
}
