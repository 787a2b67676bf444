package quote_test

import (
	"testing"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func krw(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	return kernel.NewMoneyFromMinorUnits(amount, kernel.KRW)
}

func newTestQuote(t *testing.T, validFor time.Duration) *quote.Quote {
	t.Helper()
	now := time.Now()
	q, err := quote.NewQuote(
		kernel.NewUUID(), kernel.NewUUID(),
		krw(t, 100000), krw(t, 3000), krw(t, 25000), krw(t, 8000),
		"card", now.Add(validFor), "", now,
	)
	require.NoError(t, err)
	return q
}

func TestNewQuote(t *testing.T) {
	t.Run("computes_total_from_components", func(t *testing.T) {
		q := newTestQuote(t, 7*24*time.Hour)

		assert.True(t, q.TotalAmount().IsEqual(krw(t, 136000)))
		assert.Equal(t, quote.ApprovalStatePending, q.ApprovalState())
		assert.Nil(t, q.ApprovedAt())
		assert.Nil(t, q.RejectedAt())
	})

	t.Run("rejects_deadline_not_after_creation", func(t *testing.T) {
		now := time.Now()

		_, err := quote.NewQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, 100000), krw(t, 0), krw(t, 0), krw(t, 3000),
			"card", now, "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_component", func(t *testing.T) {
		now := time.Now()

		_, err := quote.NewQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, -1), krw(t, 0), krw(t, 0), krw(t, 3000),
			"card", now.Add(time.Hour), "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_missing_payment_method", func(t *testing.T) {
		now := time.Now()

		_, err := quote.NewQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, 100000), krw(t, 0), krw(t, 0), krw(t, 3000),
			"", now.Add(time.Hour), "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreQuote(t *testing.T) {
	t.Run("rejects_total_that_does_not_match_components", func(t *testing.T) {
		_, err := quote.RestoreQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, 100000), krw(t, 3000), krw(t, 0), krw(t, 8000),
			krw(t, 999999), "card", quote.ApprovalStatePending,
			time.Now().Add(time.Hour), nil, nil, "", time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_mutually_exclusive_resolution_times", func(t *testing.T) {
		now := time.Now()

		_, err := quote.RestoreQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, 100000), krw(t, 3000), krw(t, 0), krw(t, 8000),
			krw(t, 111000), "card", quote.ApprovalStateApproved,
			now.Add(time.Hour), &now, &now, "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("restores_resolved_quote", func(t *testing.T) {
		now := time.Now()

		q, err := quote.RestoreQuote(
			kernel.NewUUID(), kernel.NewUUID(),
			krw(t, 100000), krw(t, 3000), krw(t, 0), krw(t, 8000),
			krw(t, 111000), "card", quote.ApprovalStateApproved,
			now.Add(time.Hour), &now, nil, "", now,
		)

		require.NoError(t, err)
		assert.Equal(t, quote.ApprovalStateApproved, q.ApprovalState())
	})
}

func TestQuote_Approve(t *testing.T) {
	t.Run("pending_quote_is_approved", func(t *testing.T) {
		q := newTestQuote(t, time.Hour)

		require.NoError(t, q.Approve(time.Now()))

		assert.Equal(t, quote.ApprovalStateApproved, q.ApprovalState())
		require.NotNil(t, q.ApprovedAt())
		assert.Nil(t, q.RejectedAt())
	})

	t.Run("expired_quote_returns_quote_expired_and_stays_pending", func(t *testing.T) {
		q := newTestQuote(t, time.Second)

		err := q.Approve(time.Now().Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrQuoteExpired)
		assert.Equal(t, quote.ApprovalStatePending, q.ApprovalState())
		assert.Nil(t, q.ApprovedAt())
	})

	t.Run("already_approved_quote_returns_already_resolved", func(t *testing.T) {
		q := newTestQuote(t, time.Hour)
		require.NoError(t, q.Approve(time.Now()))

		err := q.Approve(time.Now())

		require.ErrorIs(t, err, errs.ErrQuoteAlreadyResolved)
	})

	t.Run("rejected_quote_cannot_be_approved", func(t *testing.T) {
		q := newTestQuote(t, time.Hour)
		require.NoError(t, q.Reject(time.Now(), "too expensive"))

		err := q.Approve(time.Now())

		require.ErrorIs(t, err, errs.ErrQuoteAlreadyResolved)
	})
}

func TestQuote_Reject(t *testing.T) {
	t.Run("pending_quote_is_rejected_with_reason", func(t *testing.T) {
		q := newTestQuote(t, time.Hour)

		require.NoError(t, q.Reject(time.Now(), "too expensive"))

		assert.Equal(t, quote.ApprovalStateRejected, q.ApprovalState())
		require.NotNil(t, q.RejectedAt())
		assert.Nil(t, q.ApprovedAt())
		assert.Contains(t, q.Notes(), "too expensive")
	})

	t.Run("expired_quote_cannot_be_rejected", func(t *testing.T) {
		q := newTestQuote(t, time.Second)

		err := q.Reject(time.Now().Add(time.Minute), "late")

		require.ErrorIs(t, err, errs.ErrQuoteExpired)
	})
}

func TestQuote_IsExpired(t *testing.T) {
	q := newTestQuote(t, time.Hour)

	assert.False(t, q.IsExpired(time.Now()))
	assert.True(t, q.IsExpired(time.Now().Add(2*time.Hour)))
}

func TestQuote_Validate(t *testing.T) {
	var q quote.Quote

	require.ErrorIs(t, q.Validate(), quote.ErrQuoteIsNotConstructed)
}
