package services_test

import (
	"testing"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func krw(amount int64) kernel.Money {
	return kernel.NewMoneyFromMinorUnits(amount, kernel.KRW)
}

func newTestPolicy(t *testing.T) services.FeePolicy {
	t.Helper()
	policy, err := services.NewFeePolicy(3000, 3000, kernel.KRW)
	require.NoError(t, err)
	return policy
}

func TestNewFeePolicy(t *testing.T) {
	t.Run("rejects_negative_min_fee", func(t *testing.T) {
		_, err := services.NewFeePolicy(-1, 3000, kernel.KRW)
		require.Error(t, err)
	})

	t.Run("rejects_negative_shipping_fee", func(t *testing.T) {
		_, err := services.NewFeePolicy(3000, -1, kernel.KRW)
		require.Error(t, err)
	})
}

func TestFeePolicy_ServiceFee(t *testing.T) {
	policy := newTestPolicy(t)

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"eight_percent_above_minimum", 100000, 8000},
		{"minimum_fee_applies_to_small_subtotal", 10000, 3000},
		{"zero_subtotal_is_free", 0, 0},
		{"negative_subtotal_clamps_to_zero", -500, 0},
		{"rounding_half_up", 50006, 4000}, // 50006 * 0.08 = 4000.48 -> 4000
		{"exact_minimum_boundary", 37500, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := policy.ServiceFee(krw(tt.subtotal))
			assert.True(t, fee.IsEqual(krw(tt.want)),
				"ServiceFee(%d) = %s, want %d", tt.subtotal, fee, tt.want)
		})
	}

	t.Run("fee_is_never_negative", func(t *testing.T) {
		for _, subtotal := range []int64{-100000, -1, 0, 1, 999, 100000} {
			assert.False(t, policy.ServiceFee(krw(subtotal)).IsNegative())
		}
	})
}

func TestFeePolicy_DomesticShipping(t *testing.T) {
	policy := newTestPolicy(t)

	assert.True(t, policy.DomesticShipping(krw(100000)).IsEqual(krw(3000)))
	assert.True(t, policy.DomesticShipping(krw(0)).IsZero())
	assert.True(t, policy.DomesticShipping(krw(-1)).IsZero())
}

func TestFeePolicy_Subtotal(t *testing.T) {
	policy := newTestPolicy(t)

	t.Run("unit_price_times_quantity", func(t *testing.T) {
		assert.True(t, policy.Subtotal(krw(50000), 2).IsEqual(krw(100000)))
	})

	t.Run("multi_line_sum", func(t *testing.T) {
		subtotal, err := policy.SubtotalLines([]services.OrderLine{
			{UnitPrice: krw(50000), Quantity: 2},
			{UnitPrice: krw(12000), Quantity: 1},
		})

		require.NoError(t, err)
		assert.True(t, subtotal.IsEqual(krw(112000)))
	})
}

func TestFeePolicy_Total(t *testing.T) {
	policy := newTestPolicy(t)

	total, err := policy.Total(krw(100000), krw(8000), krw(3000))

	require.NoError(t, err)
	assert.True(t, total.IsEqual(krw(111000)))
}

// Two units at 50,000 each: subtotal 100,000, fee max(8,000, 3,000) = 8,000,
// shipping 3,000, total 111,000.
func TestFeePolicy_Estimate(t *testing.T) {
	policy := newTestPolicy(t)

	t.Run("standard_order", func(t *testing.T) {
		estimate, err := policy.Estimate(krw(50000), 2)

		require.NoError(t, err)
		assert.True(t, estimate.Subtotal.IsEqual(krw(100000)))
		assert.True(t, estimate.ServiceFee.IsEqual(krw(8000)))
		assert.True(t, estimate.Shipping.IsEqual(krw(3000)))
		assert.True(t, estimate.Total.IsEqual(krw(111000)))
	})

	t.Run("zero_subtotal_does_not_fail", func(t *testing.T) {
		estimate, err := policy.Estimate(krw(0), 1)

		require.NoError(t, err)
		assert.True(t, estimate.Subtotal.IsZero())
		assert.True(t, estimate.ServiceFee.IsZero())
		assert.True(t, estimate.Shipping.IsZero())
		assert.True(t, estimate.Total.IsZero())
	})
}
