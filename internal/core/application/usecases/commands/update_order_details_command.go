package commands

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand corrects pre-payment order fields. Each field is
// optional; nil means "leave unchanged". At least one field must be set.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	quantity       *int
	addressID      *kernel.UUID
	option         *string
	specialRequest *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand creates a command to amend order details.
func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID,
	quantity *int,
	addressID *kernel.UUID,
	option *string,
	specialRequest *string,
) (UpdateOrderDetailsCommand, error) {
	cmd := UpdateOrderDetailsCommand{
		option:         option,
		specialRequest: specialRequest,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setQuantity(quantity),
		cmd.setAddressID(addressID),
	); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	if quantity == nil && addressID == nil && option == nil && specialRequest == nil {
		return UpdateOrderDetailsCommand{}, errs.NewValueIsRequiredError("at least one field to update")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Quantity returns the new quantity, or nil to leave it unchanged.
func (c UpdateOrderDetailsCommand) Quantity() *int {
	return c.quantity
}

// AddressID returns the new shipping address reference, or nil to leave it unchanged.
func (c UpdateOrderDetailsCommand) AddressID() *kernel.UUID {
	return c.addressID
}

// Option returns the new product variant text, or nil to leave it unchanged.
func (c UpdateOrderDetailsCommand) Option() *string {
	return c.option
}

// SpecialRequest returns the new special request text, or nil to leave it unchanged.
func (c UpdateOrderDetailsCommand) SpecialRequest() *string {
	return c.specialRequest
}

func (c *UpdateOrderDetailsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderDetailsCommand) setQuantity(quantity *int) error {
	if quantity == nil {
		return nil
	}
	if *quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", *quantity, 1, 999)
	}
	c.quantity = quantity
	return nil
}

func (c *UpdateOrderDetailsCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	c.addressID = addressID
	return nil
}
