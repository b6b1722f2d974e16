package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOrderTotals_ThirtyPercent(t *testing.T) {
	totals, err := ComputeOrderTotals(10_000_000, 30, true)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000_000), totals.TotalAmount)
	assert.Equal(t, int64(3_000_000), totals.DownpaymentAmount)
	assert.Equal(t, int64(7_000_000), totals.RemainingAmount)
}

func TestComputeOrderTotals_Disabled(t *testing.T) {
	totals, err := ComputeOrderTotals(10_000_000, 30, false)
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.DownpaymentAmount)
	assert.Equal(t, totals.TotalAmount, totals.RemainingAmount)
}

func TestComputeOrderTotals_SplitAlwaysSumsToTotal(t *testing.T) {
	prices := []int64{0, 1, 3, 99, 1_234_567, 10_000_000, 15_000_001}
	percentages := []int64{20, 30, 40, 50}

	for _, price := range prices {
		for _, pct := range percentages {
			totals, err := ComputeOrderTotals(price, pct, true)
			require.NoError(t, err)
			assert.Equal(t, totals.TotalAmount, totals.DownpaymentAmount+totals.RemainingAmount,
				"price=%d pct=%d", price, pct)
		}
	}
}

func TestComputeOrderTotals_RoundsHalfUp(t *testing.T) {
	// 30% of 5 is 1.5, rounded up to 2.
	totals, err := ComputeOrderTotals(5, 30, true)
	require.NoError(t, err)

	assert.Equal(t, int64(2), totals.DownpaymentAmount)
	assert.Equal(t, int64(3), totals.RemainingAmount)
}

func TestComputeOrderTotals_RejectsBadInput(t *testing.T) {
	_, err := ComputeOrderTotals(-1, 30, true)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "base_price", vErr.Field)

	_, err = ComputeOrderTotals(100, -5, true)
	require.ErrorAs(t, err, &vErr)

	_, err = ComputeOrderTotals(100, 150, true)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "downpayment_percentage", vErr.Field)

	// Out-of-range percentage is irrelevant when the split is disabled.
	_, err = ComputeOrderTotals(100, 150, false)
	assert.NoError(t, err)
}

func TestComputeOrderTotals_ZeroValues(t *testing.T) {
	totals, err := ComputeOrderTotals(0, 50, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.DownpaymentAmount)
	assert.Equal(t, int64(0), totals.RemainingAmount)

	totals, err = ComputeOrderTotals(100, 0, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.DownpaymentAmount)
	assert.Equal(t, int64(100), totals.RemainingAmount)
}

func TestComputeInvoiceTotal(t *testing.T) {
	total, err := ComputeInvoiceTotal(5_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), total)

	total, err = ComputeInvoiceTotal(8_000_000, 800_000)
	require.NoError(t, err)
	assert.Equal(t, int64(8_800_000), total)

	total, err = ComputeInvoiceTotal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, err = ComputeInvoiceTotal(-1, 0)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = ComputeInvoiceTotal(0, -1)
	require.ErrorAs(t, err, &vErr)
}

func TestComputeTax(t *testing.T) {
	tax, err := ComputeTax(8_000_000, 1_000) // 10%
	require.NoError(t, err)
	assert.Equal(t, int64(800_000), tax)

	tax, err = ComputeTax(8_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tax)

	// 11% of 99 is 10.89, rounded to 11.
	tax, err = ComputeTax(99, 1_100)
	require.NoError(t, err)
	assert.Equal(t, int64(11), tax)

	_, err = ComputeTax(100, 10_001)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
