package payment_test

import (
	"testing"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		kernel.NewMoneyFromMinorUnits(111000, kernel.KRW),
		"card", time.Now(),
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("creates_pending_payment", func(t *testing.T) {
		p := newTestPayment(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Nil(t, p.PaidAt())
		assert.Empty(t, p.ExternalPaymentID())
	})

	t.Run("rejects_zero_amount", func(t *testing.T) {
		_, err := payment.NewPayment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			kernel.NewMoneyFromMinorUnits(0, kernel.KRW),
			"card", time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_missing_payment_method", func(t *testing.T) {
		_, err := payment.NewPayment(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			kernel.NewMoneyFromMinorUnits(1000, kernel.KRW),
			"", time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPayment_Complete(t *testing.T) {
	t.Run("pending_payment_completes", func(t *testing.T) {
		p := newTestPayment(t)

		require.NoError(t, p.Complete("tx-9001", time.Now()))

		assert.Equal(t, payment.StatusCompleted, p.Status())
		assert.Equal(t, "tx-9001", p.ExternalPaymentID())
		require.NotNil(t, p.PaidAt())
	})

	t.Run("completed_payment_cannot_complete_again", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Complete("tx-9001", time.Now()))

		err := p.Complete("tx-9002", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "tx-9001", p.ExternalPaymentID())
	})
}

func TestPayment_Fail(t *testing.T) {
	t.Run("pending_payment_fails", func(t *testing.T) {
		p := newTestPayment(t)

		require.NoError(t, p.Fail("tx-9001", time.Now()))

		assert.Equal(t, payment.StatusFailed, p.Status())
		assert.Nil(t, p.PaidAt())
	})

	t.Run("failed_payment_cannot_complete", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Fail("tx-9001", time.Now()))

		err := p.Complete("tx-9002", time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestPayment_Refund(t *testing.T) {
	t.Run("completed_payment_refunds", func(t *testing.T) {
		p := newTestPayment(t)
		require.NoError(t, p.Complete("tx-9001", time.Now()))

		require.NoError(t, p.Refund(time.Now()))

		assert.Equal(t, payment.StatusRefunded, p.Status())
	})

	t.Run("pending_payment_cannot_refund", func(t *testing.T) {
		p := newTestPayment(t)

		err := p.Refund(time.Now())

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestStatus_ForwardOnly(t *testing.T) {
	valid := map[payment.Status][]payment.Status{
		payment.StatusPending:   {payment.StatusCompleted, payment.StatusFailed},
		payment.StatusCompleted: {payment.StatusRefunded},
	}
	all := []payment.Status{
		payment.StatusPending, payment.StatusCompleted, payment.StatusFailed, payment.StatusRefunded,
	}

	for _, from := range all {
		for _, to := range all {
			allowed := false
			for _, v := range valid[from] {
				if v == to {
					allowed = true
				}
			}
			assert.Equal(t, allowed, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestToStatus(t *testing.T) {
	t.Run("accepts_known_status", func(t *testing.T) {
		s, err := payment.ToStatus("completed")

		require.NoError(t, err)
		assert.Equal(t, payment.StatusCompleted, s)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := payment.ToStatus("maybe")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
