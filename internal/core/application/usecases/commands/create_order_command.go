package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a user's request that the operator buy a
// product on their behalf. Encapsulates the product snapshot, quantity, and
// optional shipping details.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         kernel.UUID
	product        order.ProductSnapshot
	quantity       int
	addressID      *kernel.UUID
	option         string
	specialRequest string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to submit a new proxy-purchase order.
// Validates that the identifiers are valid, the product snapshot has a title,
// and the quantity is at least 1.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	product order.ProductSnapshot,
	quantity int,
	addressID *kernel.UUID,
	option string,
	specialRequest string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		option:         option,
		specialRequest: specialRequest,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setProduct(product),
		cmd.setQuantity(quantity),
		cmd.setAddressID(addressID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the submitting user's identifier.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Product returns the product snapshot to freeze on the order.
func (c CreateOrderCommand) Product() order.ProductSnapshot {
	return c.product
}

// Quantity returns the requested quantity.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// AddressID returns the optional shipping address reference.
func (c CreateOrderCommand) AddressID() *kernel.UUID {
	return c.addressID
}

// Option returns the optional product variant text.
func (c CreateOrderCommand) Option() string {
	return c.option
}

// SpecialRequest returns the optional free-text instructions.
func (c CreateOrderCommand) SpecialRequest() string {
	return c.specialRequest
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setProduct(product order.ProductSnapshot) error {
	if product.Title() == "" {
		return errs.NewValueIsRequiredError("product snapshot")
	}
	c.product = product
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 999)
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	c.addressID = addressID
	return nil
}
