package commands_test

import (
	"testing"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/core/domain/services"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func testFeePolicy(t *testing.T) services.FeePolicy {
	t.Helper()
	policy, err := services.NewFeePolicy(3000, 3000, kernel.KRW)
	require.NoError(t, err)
	return policy
}

func testProduct(t *testing.T) order.ProductSnapshot {
	t.Helper()
	product, err := order.NewProductSnapshot(
		gofakeit.ProductName(),
		kernel.NewMoneyFromMinorUnits(100000, kernel.KRW),
		gofakeit.URL(),
		nil,
	)
	require.NoError(t, err)
	return product
}

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	number, err := kernel.GenerateOrderNumber("HIKO", time.Now())
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(),
		number,
		kernel.NewUUID(),
		testProduct(t),
		1,
		nil,
		"",
		"",
		status,
		order.PriceEstimate{},
		1,
		time.Now(),
		time.Now(),
	)
	require.NoError(t, err)
	return aggregate
}

func testQuote(t *testing.T, orderID kernel.UUID, state quote.ApprovalState) *quote.Quote {
	t.Helper()
	now := time.Now()
	aggregate, err := quote.NewQuote(
		kernel.NewUUID(),
		orderID,
		kernel.NewMoneyFromMinorUnits(100000, kernel.KRW),
		kernel.NewMoneyFromMinorUnits(3000, kernel.KRW),
		kernel.NewMoneyFromMinorUnits(25000, kernel.KRW),
		kernel.NewMoneyFromMinorUnits(8000, kernel.KRW),
		"bank_transfer",
		now.Add(24*time.Hour),
		"",
		now,
	)
	require.NoError(t, err)

	switch state {
	case quote.ApprovalStateApproved:
		require.NoError(t, aggregate.Approve(now))
	case quote.ApprovalStateRejected:
		require.NoError(t, aggregate.Reject(now, gofakeit.Sentence(3)))
	case quote.ApprovalStatePending:
	}

	return aggregate
}

func testPayment(t *testing.T, orderID kernel.UUID, status payment.Status) *payment.Payment {
	t.Helper()
	now := time.Now()
	aggregate, err := payment.NewPayment(
		kernel.NewUUID(),
		orderID,
		nil,
		kernel.NewMoneyFromMinorUnits(136000, kernel.KRW),
		"bank_transfer",
		now,
	)
	require.NoError(t, err)

	switch status {
	case payment.StatusCompleted:
		require.NoError(t, aggregate.Complete(gofakeit.UUID(), now))
	case payment.StatusFailed:
		require.NoError(t, aggregate.Fail(gofakeit.UUID(), now))
	case payment.StatusRefunded:
		require.NoError(t, aggregate.Complete(gofakeit.UUID(), now))
		require.NoError(t, aggregate.Refund(now))
	case payment.StatusPending:
	}

	return aggregate
}
