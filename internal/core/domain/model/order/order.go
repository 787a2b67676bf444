package order

import (
	"errors"
	"fmt"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNotAmendable is returned when quantity or shipping details are
	// changed after the order has reached a payment status.
	ErrOrderNotAmendable = errors.New("order details can only be changed before payment")
)

// amendableStatuses are the pre-payment statuses in which non-status field
// corrections (quantity, address, request details) are still allowed.
var amendableStatuses = map[Status]struct{}{
	StatusPendingReview: {},
	StatusQuoteSent:     {},
	StatusQuoteApproved: {},
}

// Order is the aggregate root for a proxy-purchase request: a user asks the
// operator to buy a product on a foreign marketplace on their behalf.
//
// Order maintains these invariants:
//   - quantity >= 1
//   - status is always one of the defined Status values
//   - the order number is assigned once at creation and never mutated
//   - status changes go through TransitionTo, which validates against the
//     state machine's adjacency table
//
// The version field is the optimistic-concurrency token. Repositories include
// it in the conditional UPDATE and bump it on every successful write, so two
// concurrent writers produce exactly one winner.
type Order struct {
	id             kernel.UUID
	orderNumber    kernel.OrderNumber
	userID         kernel.UUID
	product        ProductSnapshot
	quantity       int
	addressID      *kernel.UUID
	option         string
	specialRequest string
	status         Status
	estimate       PriceEstimate
	version        int64
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates a new proxy-purchase order in pending_review status.
// The price estimate is the display-only FeePolicy snapshot taken at creation.
func NewOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	userID kernel.UUID,
	product ProductSnapshot,
	quantity int,
	addressID *kernel.UUID,
	option string,
	specialRequest string,
	estimate PriceEstimate,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:         StatusPendingReview,
		estimate:       estimate,
		option:         option,
		specialRequest: specialRequest,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setProduct(product),
		o.setQuantity(quantity),
		o.setAddressID(addressID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. The raw status string
// is validated; unknown values are rejected as a data-integrity error.
func RestoreOrder(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	userID kernel.UUID,
	product ProductSnapshot,
	quantity int,
	addressID *kernel.UUID,
	option string,
	specialRequest string,
	status Status,
	estimate PriceEstimate,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:         status,
		estimate:       estimate,
		option:         option,
		specialRequest: specialRequest,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setUserID(userID),
		o.setProduct(product),
		o.setQuantity(quantity),
		o.setAddressID(addressID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable human-readable order number.
func (o *Order) OrderNumber() kernel.OrderNumber {
	return o.orderNumber
}

// UserID returns the identifier of the user who owns the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Product returns the frozen product snapshot.
func (o *Order) Product() ProductSnapshot {
	return o.product
}

// Quantity returns the requested quantity.
func (o *Order) Quantity() int {
	return o.quantity
}

// AddressID returns the shipping address reference, or nil if not set yet.
func (o *Order) AddressID() *kernel.UUID {
	return o.addressID
}

// Option returns the optional product variant text.
func (o *Order) Option() string {
	return o.option
}

// SpecialRequest returns the optional free-text instructions for the operator.
func (o *Order) SpecialRequest() string {
	return o.specialRequest
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Estimate returns the display-only price estimate snapshot.
func (o *Order) Estimate() PriceEstimate {
	return o.estimate
}

// Version returns the optimistic-concurrency token loaded from the store.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order to target if the state machine permits it.
// Returns an InvalidTransitionError otherwise; the order is left unchanged.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// ChangeQuantity updates the quantity and the accompanying price estimate.
// Allowed only while the order is in a pre-payment status.
func (o *Order) ChangeQuantity(quantity int, estimate PriceEstimate, now time.Time) error {
	if err := o.ensureAmendable(); err != nil {
		return err
	}
	if err := o.setQuantity(quantity); err != nil {
		return err
	}

	o.estimate = estimate
	o.updatedAt = now
	return nil
}

// ChangeShippingAddress updates the shipping address reference.
// Allowed only while the order is in a pre-payment status.
func (o *Order) ChangeShippingAddress(addressID kernel.UUID, now time.Time) error {
	if err := o.ensureAmendable(); err != nil {
		return err
	}
	if err := addressID.Validate(); err != nil {
		return err
	}

	o.addressID = &addressID
	o.updatedAt = now
	return nil
}

// ChangeRequestDetails updates the option text and special request.
// Allowed only while the order is in a pre-payment status.
func (o *Order) ChangeRequestDetails(option, specialRequest string, now time.Time) error {
	if err := o.ensureAmendable(); err != nil {
		return err
	}

	o.option = option
	o.specialRequest = specialRequest
	o.updatedAt = now
	return nil
}

func (o *Order) ensureAmendable() error {
	if _, ok := amendableStatuses[o.status]; !ok {
		return errs.NewPreconditionFailedErrorWithCause(
			"order is not amendable",
			fmt.Errorf("%w: current status is %s", ErrOrderNotAmendable, o.status),
		)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber kernel.OrderNumber) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setProduct(product ProductSnapshot) error {
	if product.Title() == "" {
		return errs.NewValueIsRequiredError("product snapshot")
	}
	o.product = product
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxQuantity)
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		o.addressID = nil
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.addressID = addressID
	return nil
}

// maxQuantity bounds a single request; larger purchases go through the
// operator as separate orders.
const maxQuantity = 999
