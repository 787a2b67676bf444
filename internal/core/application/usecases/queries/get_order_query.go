// Package queries contains read-only operations against the store.
// Query handlers bypass the domain aggregates and read projection rows
// directly with raw SQL, following the CQRS split: commands go through
// aggregates and repositories, queries go straight to the database.
package queries

import (
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full view of one order: the order row, its
// chronological status history, and every quote and payment attached to it.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's aggregate view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderResponse is the read model of one order row.
type OrderResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	UserID         kernel.UUID
	ProductTitle   string
	UnitPrice      kernel.Money
	SourceURL      string
	Quantity       int
	AddressID      *kernel.UUID
	Option         string
	SpecialRequest string
	Status         order.Status
	Subtotal       kernel.Money
	ServiceFee     kernel.Money
	Shipping       kernel.Money
	Total          kernel.Money
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StatusHistoryResponse is the read model of one status history entry.
type StatusHistoryResponse struct {
	ID         kernel.UUID
	FromStatus *order.Status
	ToStatus   order.Status
	ChangedBy  kernel.UUID
	Note       string
	CreatedAt  time.Time
}

// QuoteResponse is the read model of one quote row.
type QuoteResponse struct {
	ID                    kernel.UUID
	ProductCost           kernel.Money
	DomesticShipping      kernel.Money
	InternationalShipping kernel.Money
	Fee                   kernel.Money
	TotalAmount           kernel.Money
	PaymentMethod         string
	ApprovalState         quote.ApprovalState
	ValidUntil            time.Time
	Notes                 string
	CreatedAt             time.Time
}

// PaymentResponse is the read model of one payment row.
type PaymentResponse struct {
	ID                kernel.UUID
	QuoteID           *kernel.UUID
	Amount            kernel.Money
	PaymentMethod     string
	ExternalPaymentID string
	Status            payment.Status
	PaidAt            *time.Time
	CreatedAt         time.Time
}

// GetOrderQueryResponse aggregates the order view with its related rows.
// History is chronological; quotes and payments are newest first.
type GetOrderQueryResponse struct {
	Order    OrderResponse
	History  []StatusHistoryResponse
	Quotes   []QuoteResponse
	Payments []PaymentResponse
}
