package transfer

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

var (
	ErrBelowMinimum = errors.New("amount below minimum withdrawal")
	ErrAboveMaximum = errors.New("amount above maximum withdrawal")
)

var (
	uniqueOffset     = decimal.RequireFromString("0.02")
	uniqueSuffixUnit = decimal.New(1, -5)
	roundUpFraction  = decimal.RequireFromString("0.8")
)

// FeeSchedule holds the withdrawal limits and commission rules
type FeeSchedule struct {
	FixedFeeThreshold decimal.Decimal
	FixedFeeAmount    decimal.Decimal
	PercentageFee     decimal.Decimal
	MinWithdrawal     decimal.Decimal
	MaxWithdrawal     decimal.Decimal
}

// NewFeeSchedule builds a FeeSchedule from configuration
func NewFeeSchedule(cfg config.TransferConfig) FeeSchedule {
	return FeeSchedule{
		FixedFeeThreshold: cfg.FixedFeeThreshold,
		FixedFeeAmount:    cfg.FixedFeeAmount,
		PercentageFee:     cfg.PercentageFee,
		MinWithdrawal:     cfg.MinWithdrawal,
		MaxWithdrawal:     cfg.MaxWithdrawal,
	}
}

// CheckLimits validates amount against the withdrawal bounds, both inclusive
func (f FeeSchedule) CheckLimits(amount decimal.Decimal) error {
	if amount.LessThan(f.MinWithdrawal) {
		return fmt.Errorf("%w: %s < %s", ErrBelowMinimum, amount, f.MinWithdrawal)
	}
	if amount.GreaterThan(f.MaxWithdrawal) {
		return fmt.Errorf("%w: %s > %s", ErrAboveMaximum, amount, f.MaxWithdrawal)
	}
	return nil
}

// Commission is the fixed fee up to and including the threshold, the
// percentage fee above it
func (f FeeSchedule) Commission(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(f.FixedFeeThreshold) {
		return f.FixedFeeAmount
	}
	return amount.Mul(f.PercentageFee)
}

// Quote is the payout computed from a verified amount
type Quote struct {
	Commission         decimal.Decimal
	NetAmount          decimal.Decimal
	ExchangeRate       decimal.Decimal
	LocalAmount        decimal.Decimal
	RoundedLocalAmount decimal.Decimal
}

// Quote computes commission and payout for amount at the given exchange rate
func (f FeeSchedule) Quote(amount, rate decimal.Decimal) Quote {
	commission := f.Commission(amount)
	net := amount.Sub(commission).Round(2)
	local := net.Mul(rate).Round(2)
	return Quote{
		Commission:         commission,
		NetAmount:          net,
		ExchangeRate:       rate,
		LocalAmount:        local,
		RoundedLocalAmount: RoundLocalAmount(local),
	}
}

// RoundLocalAmount rounds to a whole unit: a fractional part above 0.8 rounds
// up, anything else is dropped
func RoundLocalAmount(amount decimal.Decimal) decimal.Decimal {
	whole := amount.Floor()
	if amount.Sub(whole).GreaterThan(roundUpFraction) {
		return whole.Add(decimal.NewFromInt(1))
	}
	return whole
}

// SuffixFunc returns a number in [1000, 9999]
type SuffixFunc func() int64

// RandomSuffix is the default SuffixFunc
func RandomSuffix() int64 {
	return 1000 + rand.Int64N(9000)
}

// UniqueAmount derives the amount the user must send so the payment can be
// told apart from other transfers of the same base amount:
// base + 0.02 + suffix/100000, truncated to 5 decimal places.
func UniqueAmount(base decimal.Decimal, suffix SuffixFunc) decimal.Decimal {
	if suffix == nil {
		suffix = RandomSuffix
	}
	return base.
		Add(uniqueOffset).
		Add(decimal.NewFromInt(suffix()).Mul(uniqueSuffixUnit)).
		Truncate(5)
}
