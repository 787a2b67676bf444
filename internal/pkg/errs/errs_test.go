package errs_test

import (
	"errors"
	"testing"

	"proxybuy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 999)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 999, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is out of range: 0 is quantity, min value is 1, max value is 999", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("userId")

		assert.Equal(t, "userId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: userId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("userId", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: userId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("pending_review", "payment_completed")

	assert.Equal(t, "pending_review", err.From)
	assert.Equal(t, "payment_completed", err.To)
	assert.Equal(t, "invalid status transition: pending_review -> payment_completed", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestQuoteExpiredError(t *testing.T) {
	err := errs.NewQuoteExpiredError("q-1", "2026-01-01T00:00:00Z")

	assert.Equal(t, "q-1", err.QuoteID)
	assert.Equal(t, "quote expired: quote q-1 was valid until 2026-01-01T00:00:00Z", err.Error())
	assert.Equal(t, errs.ErrQuoteExpired, err.Unwrap())
}

func TestQuoteAlreadyResolvedError(t *testing.T) {
	err := errs.NewQuoteAlreadyResolvedError("q-1", "approved")

	assert.Equal(t, "quote already resolved: quote q-1 is approved", err.Error())
	assert.Equal(t, errs.ErrQuoteAlreadyResolved, err.Unwrap())
}

func TestPreconditionFailedError(t *testing.T) {
	t.Run("NewPreconditionFailedError", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("no completed payment for order")

		assert.Equal(t, "precondition failed: no completed payment for order", err.Error())
		assert.Equal(t, errs.ErrPreconditionFailed, err.Unwrap())
	})

	t.Run("NewPreconditionFailedErrorWithCause", func(t *testing.T) {
		cause := errors.New("payment is pending")
		err := errs.NewPreconditionFailedErrorWithCause("no completed payment for order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"precondition failed: no completed payment for order (cause: payment is pending)",
			err.Error())
	})
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "123")

	assert.Equal(t, "concurrent modification conflict: param is: order, ID is: 123", err.Error())
	assert.Equal(t, errs.ErrConflict, err.Unwrap())
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewUnavailableError("orders.update", cause)

	assert.Equal(t, "store unavailable: orders.update (cause: connection refused)", err.Error())
	assert.Equal(t, errs.ErrUnavailable, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("quantity"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("quantity", 0, 1, 999), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("userId"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewInvalidTransitionError("a", "b"), errs.ErrInvalidTransition)
	require.ErrorIs(t, errs.NewQuoteExpiredError("q", "t"), errs.ErrQuoteExpired)
	require.ErrorIs(t, errs.NewQuoteAlreadyResolvedError("q", "approved"), errs.ErrQuoteAlreadyResolved)
	require.ErrorIs(t, errs.NewPreconditionFailedError("r"), errs.ErrPreconditionFailed)
	require.ErrorIs(t, errs.NewConflictError("order", "123"), errs.ErrConflict)
	require.ErrorIs(t, errs.NewUnavailableError("op", nil), errs.ErrUnavailable)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", errs.NewValueIsInvalidError("quantity"), "VALIDATION"},
		{"required", errs.NewValueIsRequiredError("userId"), "VALIDATION"},
		{"not found", errs.NewObjectNotFoundError("orderId", "1"), "NOT_FOUND"},
		{"invalid transition", errs.NewInvalidTransitionError("a", "b"), "INVALID_TRANSITION"},
		{"quote expired", errs.NewQuoteExpiredError("q", "t"), "QUOTE_EXPIRED"},
		{"quote resolved", errs.NewQuoteAlreadyResolvedError("q", "rejected"), "QUOTE_ALREADY_RESOLVED"},
		{"precondition", errs.NewPreconditionFailedError("r"), "PRECONDITION_FAILED"},
		{"conflict", errs.NewConflictError("order", "1"), "CONFLICT"},
		{"unavailable", errs.NewUnavailableError("op", nil), "UNAVAILABLE"},
		{"unknown", errors.New("boom"), "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.Kind(tt.err))
		})
	}
}
