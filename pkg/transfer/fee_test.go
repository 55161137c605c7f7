package transfer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultSchedule() FeeSchedule {
	return NewFeeSchedule(config.TransferConfig{
		FixedFeeThreshold: d("20"),
		FixedFeeAmount:    d("1"),
		PercentageFee:     d("0.05"),
		MinWithdrawal:     d("10"),
		MaxWithdrawal:     d("1000"),
	})
}

func TestFeeSchedule_Commission(t *testing.T) {
	f := defaultSchedule()

	tests := []struct {
		amount string
		want   string
	}{
		{"10", "1"},
		{"20", "1"},
		{"20.01", "1.0005"},
		{"100", "5"},
		{"1000", "50"},
	}
	for _, tt := range tests {
		got := f.Commission(d(tt.amount))
		assert.True(t, got.Equal(d(tt.want)), "commission(%s) = %s, want %s", tt.amount, got, tt.want)
	}
}

func TestFeeSchedule_Quote(t *testing.T) {
	f := defaultSchedule()

	q := f.Quote(d("100"), d("3.75"))
	assert.True(t, q.Commission.Equal(d("5")))
	assert.True(t, q.NetAmount.Equal(d("95")))
	assert.True(t, q.LocalAmount.Equal(d("356.25")))
	assert.True(t, q.RoundedLocalAmount.Equal(d("356")))
	assert.True(t, q.ExchangeRate.Equal(d("3.75")))

	q = f.Quote(d("20.005"), d("1"))
	assert.True(t, q.Commission.Equal(d("1")))
	assert.True(t, q.NetAmount.Equal(d("19.01")), q.NetAmount.String())

	q = f.Quote(d("33.33"), d("1"))
	assert.True(t, q.NetAmount.Equal(d("31.66")), q.NetAmount.String())
}

func TestFeeSchedule_CheckLimits(t *testing.T) {
	f := defaultSchedule()

	assert.NoError(t, f.CheckLimits(d("10")))
	assert.NoError(t, f.CheckLimits(d("1000")))
	assert.True(t, errors.Is(f.CheckLimits(d("9.99")), ErrBelowMinimum))
	assert.True(t, errors.Is(f.CheckLimits(d("1000.01")), ErrAboveMaximum))
}

func TestRoundLocalAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"356.25", "356"},
		{"356.8", "356"},
		{"356.81", "357"},
		{"12", "12"},
	}
	for _, tt := range tests {
		got := RoundLocalAmount(d(tt.in))
		assert.True(t, got.Equal(d(tt.want)), "round(%s) = %s", tt.in, got)
	}
}

func TestUniqueAmount(t *testing.T) {
	got := UniqueAmount(d("20"), func() int64 { return 1234 })
	assert.True(t, got.Equal(d("20.03234")), got.String())

	got = UniqueAmount(d("20"), func() int64 { return 9999 })
	assert.True(t, got.Equal(d("20.11999")), got.String())
}

func TestUniqueAmount_Random(t *testing.T) {
	base := d("50")
	low := d("50.03")
	high := d("50.11999")
	for i := 0; i < 200; i++ {
		got := UniqueAmount(base, nil)
		assert.True(t, got.GreaterThanOrEqual(low) && got.LessThanOrEqual(high), got.String())
		assert.LessOrEqual(t, -got.Exponent(), int32(5))
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusAwaitingPayment.Terminal())
	assert.False(t, StatusPendingReview.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, Status("unknown").Valid())
}
