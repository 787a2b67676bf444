package queries_test

import (
	"testing"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"

	"golang.org/x/text/currency"
)

// noopTracker satisfies the repositories' aggregate tracking without a unit
// of work; query tests seed data directly on the main connection.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// restoreTestOrder builds an order in an arbitrary lifecycle status with a
// controlled creation time, so list ordering and statistics buckets can be
// asserted deterministically.
func restoreTestOrder(t *testing.T, userID kernel.UUID, status order.Status, createdAt time.Time) *order.Order {
	t.Helper()

	orderNumber, err := kernel.GenerateOrderNumber("HIKO", createdAt)
	if err != nil {
		t.Fatal(err)
	}

	product, err := order.NewProductSnapshot(
		"Mechanical Keyboard",
		kernel.NewMoneyFromMinorUnits(150000, currency.KRW),
		"https://example.com/products/keyboard",
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	estimate := order.PriceEstimate{
		Subtotal:   kernel.NewMoneyFromMinorUnits(150000, currency.KRW),
		ServiceFee: kernel.NewMoneyFromMinorUnits(12000, currency.KRW),
		Shipping:   kernel.NewMoneyFromMinorUnits(3000, currency.KRW),
		Total:      kernel.NewMoneyFromMinorUnits(165000, currency.KRW),
	}

	restored, err := order.RestoreOrder(
		kernel.NewUUID(), orderNumber, userID,
		product, 1, nil, "black", "",
		status, estimate, 1, createdAt, createdAt,
	)
	if err != nil {
		t.Fatal(err)
	}
	return restored
}

func pendingTestQuote(t *testing.T, orderID kernel.UUID, now time.Time) *quote.Quote {
	t.Helper()

	pending, err := quote.NewQuote(
		kernel.NewUUID(),
		orderID,
		kernel.NewMoneyFromMinorUnits(150000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(3000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(25000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(12000, currency.KRW),
		"bank_transfer",
		now.Add(24*time.Hour),
		"",
		now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return pending
}

func pendingTestPayment(t *testing.T, orderID kernel.UUID, quoteID *kernel.UUID, now time.Time) *payment.Payment {
	t.Helper()

	pending, err := payment.NewPayment(
		kernel.NewUUID(),
		orderID,
		quoteID,
		kernel.NewMoneyFromMinorUnits(190000, currency.KRW),
		"bank_transfer",
		now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return pending
}
