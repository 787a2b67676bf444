package http

import (
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"
)

// MoneyPayload carries a monetary amount as currency minor units.
type MoneyPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ProductPayload describes the product being ordered.
type ProductPayload struct {
	Title     string  `json:"title"`
	UnitPrice int64   `json:"unit_price"`
	Currency  string  `json:"currency"`
	SourceURL string  `json:"source_url"`
	HotdealID *string `json:"hotdeal_id,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	UserID         string         `json:"user_id"`
	Product        ProductPayload `json:"product"`
	Quantity       int            `json:"quantity"`
	AddressID      *string        `json:"address_id,omitempty"`
	Option         string         `json:"option,omitempty"`
	SpecialRequest string         `json:"special_request,omitempty"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:orderID.
// All fields are optional; at least one must be present.
type UpdateOrderRequest struct {
	Quantity       *int    `json:"quantity,omitempty"`
	AddressID      *string `json:"address_id,omitempty"`
	Option         *string `json:"option,omitempty"`
	SpecialRequest *string `json:"special_request,omitempty"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderID/status.
type TransitionOrderRequest struct {
	Target string `json:"target"`
	Actor  string `json:"actor"`
	Note   string `json:"note,omitempty"`
}

// CreateQuoteRequest is the body of POST /api/v1/orders/:orderID/quotes.
// Fee is optional; when absent the fee policy computes it from the product cost.
type CreateQuoteRequest struct {
	Actor                 string    `json:"actor"`
	ProductCost           int64     `json:"product_cost"`
	DomesticShipping      int64     `json:"domestic_shipping"`
	InternationalShipping int64     `json:"international_shipping"`
	Fee                   *int64    `json:"fee,omitempty"`
	Currency              string    `json:"currency"`
	PaymentMethod         string    `json:"payment_method"`
	ValidUntil            time.Time `json:"valid_until"`
	Notes                 string    `json:"notes,omitempty"`
}

// ApproveQuoteRequest is the body of POST /api/v1/quotes/:quoteID/approve.
type ApproveQuoteRequest struct {
	Actor string `json:"actor"`
}

// RejectQuoteRequest is the body of POST /api/v1/quotes/:quoteID/reject.
type RejectQuoteRequest struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// RecordPaymentRequest is the body of POST /api/v1/orders/:orderID/payments.
type RecordPaymentRequest struct {
	QuoteID       *string `json:"quote_id,omitempty"`
	Amount        int64   `json:"amount"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`
}

// ConfirmPaymentRequest is the body of POST /api/v1/payments/:paymentID/confirm.
// Success false records a failed gateway settlement.
type ConfirmPaymentRequest struct {
	ExternalPaymentID string `json:"external_payment_id"`
	Success           bool   `json:"success"`
}

// OrderResponse is the JSON shape of an order aggregate.
type OrderResponse struct {
	ID             string         `json:"id"`
	OrderNumber    string         `json:"order_number"`
	UserID         string         `json:"user_id"`
	Product        ProductPayload `json:"product"`
	Quantity       int            `json:"quantity"`
	AddressID      *string        `json:"address_id,omitempty"`
	Option         string         `json:"option,omitempty"`
	SpecialRequest string         `json:"special_request,omitempty"`
	Status         string         `json:"status"`
	Estimate       EstimateView   `json:"estimate"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EstimateView is the display-only price estimate snapshot.
type EstimateView struct {
	Subtotal   MoneyPayload `json:"subtotal"`
	ServiceFee MoneyPayload `json:"service_fee"`
	Shipping   MoneyPayload `json:"shipping"`
	Total      MoneyPayload `json:"total"`
}

// QuoteResponse is the JSON shape of a quote aggregate.
type QuoteResponse struct {
	ID                    string       `json:"id"`
	OrderID               string       `json:"order_id"`
	ProductCost           MoneyPayload `json:"product_cost"`
	DomesticShipping      MoneyPayload `json:"domestic_shipping"`
	InternationalShipping MoneyPayload `json:"international_shipping"`
	Fee                   MoneyPayload `json:"fee"`
	TotalAmount           MoneyPayload `json:"total_amount"`
	PaymentMethod         string       `json:"payment_method"`
	ApprovalState         string       `json:"approval_state"`
	ValidUntil            time.Time    `json:"valid_until"`
	ApprovedAt            *time.Time   `json:"approved_at,omitempty"`
	RejectedAt            *time.Time   `json:"rejected_at,omitempty"`
	Notes                 string       `json:"notes,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
}

// PaymentResponse is the JSON shape of a payment record.
type PaymentResponse struct {
	ID                string       `json:"id"`
	OrderID           string       `json:"order_id"`
	QuoteID           *string      `json:"quote_id,omitempty"`
	Amount            MoneyPayload `json:"amount"`
	PaymentMethod     string       `json:"payment_method"`
	ExternalPaymentID string       `json:"external_payment_id,omitempty"`
	Status            string       `json:"status"`
	PaidAt            *time.Time   `json:"paid_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func moneyToPayload(m kernel.Money) MoneyPayload {
	return MoneyPayload{Amount: m.Amount().IntPart(), Currency: m.CurrencyCode()}
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	var hotdealID *string
	if id := aggregate.Product().HotdealID(); id != nil {
		s := id.String()
		hotdealID = &s
	}

	var addressID *string
	if id := aggregate.AddressID(); id != nil {
		s := id.String()
		addressID = &s
	}

	estimate := aggregate.Estimate()

	return OrderResponse{
		ID:          aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber().String(),
		UserID:      aggregate.UserID().String(),
		Product: ProductPayload{
			Title:     aggregate.Product().Title(),
			UnitPrice: aggregate.Product().UnitPrice().Amount().IntPart(),
			Currency:  aggregate.Product().UnitPrice().CurrencyCode(),
			SourceURL: aggregate.Product().SourceURL(),
			HotdealID: hotdealID,
		},
		Quantity:       aggregate.Quantity(),
		AddressID:      addressID,
		Option:         aggregate.Option(),
		SpecialRequest: aggregate.SpecialRequest(),
		Status:         aggregate.Status().String(),
		Estimate: EstimateView{
			Subtotal:   moneyToPayload(estimate.Subtotal),
			ServiceFee: moneyToPayload(estimate.ServiceFee),
			Shipping:   moneyToPayload(estimate.Shipping),
			Total:      moneyToPayload(estimate.Total),
		},
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

func quoteToResponse(aggregate *quote.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                    aggregate.ID().String(),
		OrderID:               aggregate.OrderID().String(),
		ProductCost:           moneyToPayload(aggregate.ProductCost()),
		DomesticShipping:      moneyToPayload(aggregate.DomesticShipping()),
		InternationalShipping: moneyToPayload(aggregate.InternationalShipping()),
		Fee:                   moneyToPayload(aggregate.Fee()),
		TotalAmount:           moneyToPayload(aggregate.TotalAmount()),
		PaymentMethod:         aggregate.PaymentMethod(),
		ApprovalState:         aggregate.ApprovalState().String(),
		ValidUntil:            aggregate.ValidUntil(),
		ApprovedAt:            aggregate.ApprovedAt(),
		RejectedAt:            aggregate.RejectedAt(),
		Notes:                 aggregate.Notes(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

func paymentToResponse(aggregate *payment.Payment) PaymentResponse {
	var quoteID *string
	if id := aggregate.QuoteID(); id != nil {
		s := id.String()
		quoteID = &s
	}

	return PaymentResponse{
		ID:                aggregate.ID().String(),
		OrderID:           aggregate.OrderID().String(),
		QuoteID:           quoteID,
		Amount:            moneyToPayload(aggregate.Amount()),
		PaymentMethod:     aggregate.PaymentMethod(),
		ExternalPaymentID: aggregate.ExternalPaymentID(),
		Status:            aggregate.Status().String(),
		PaidAt:            aggregate.PaidAt(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}
}
