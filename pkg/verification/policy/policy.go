// Package policy decides whether a fetched transaction is the transfer a
// caller expects.
package policy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	"github.com/chainsafe/usdt-payout-verifier/pkg/calldata"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

// DefaultTolerance is the absolute amount difference still accepted as a match
var DefaultTolerance = decimal.RequireFromString("0.01")

// ContractResolver maps a token contract address back to its network
type ContractResolver interface {
	NetworkByContract(addr string) (network.Network, bool)
}

// Policy matches transactions against expectations
type Policy struct {
	contracts ContractResolver
	tolerance decimal.Decimal
	logger    *zap.Logger
}

// New creates a Policy. A non-positive tolerance uses DefaultTolerance.
func New(contracts ContractResolver, tolerance decimal.Decimal, logger *zap.Logger) *Policy {
	if !tolerance.IsPositive() {
		tolerance = DefaultTolerance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{
		contracts: contracts,
		tolerance: tolerance,
		logger:    logger,
	}
}

// Tolerance returns the configured amount tolerance
func (p *Policy) Tolerance() decimal.Decimal {
	return p.tolerance
}

// AmountMatches reports whether actual is within tolerance of expected.
// The boundary is inclusive.
func (p *Policy) AmountMatches(actual, expected decimal.Decimal) bool {
	return WithinTolerance(actual, expected, p.tolerance)
}

// WithinTolerance reports whether |actual-expected| <= tolerance
func WithinTolerance(actual, expected, tolerance decimal.Decimal) bool {
	return actual.Sub(expected).Abs().LessThanOrEqual(tolerance)
}

// Match checks raw against req and, when every check passes, fetches the block
// time and assembles the result. req.ExpectedAddress must already be in the
// canonical form of spec.Family.
//
// Checks run in order and stop at the first failure: token contract, network,
// recipient, amount, confirmation. A failure is returned as *verification.Rejection.
// Decoder errors and block time errors are returned unchanged.
func (p *Policy) Match(
	ctx context.Context,
	adapter chain.Adapter,
	spec network.Spec,
	req verification.Request,
	raw *chain.RawTransaction,
) (*verification.Result, error) {
	if raw.Contract != spec.Contract {
		return nil, p.reject(spec.Network, raw.TxID, p.contractReason(spec, raw.Contract), spec.Contract, raw.Contract)
	}

	decoded, err := calldata.Decode(raw.Input, spec)
	if err != nil {
		return nil, fmt.Errorf("decode %s transfer %s: %w", spec.Network, raw.TxID, err)
	}

	if decoded.Recipient != req.ExpectedAddress {
		return nil, p.reject(spec.Network, raw.TxID, verification.ReasonWrongRecipient, req.ExpectedAddress, decoded.Recipient)
	}

	if !p.AmountMatches(decoded.Amount, req.ExpectedAmount) {
		return nil, p.reject(spec.Network, raw.TxID, verification.ReasonAmountMismatch,
			req.ExpectedAmount.String(), decoded.Amount.String())
	}

	if !raw.Confirmed {
		return nil, p.reject(spec.Network, raw.TxID, verification.ReasonUnconfirmed, "confirmed", "pending")
	}

	confirmedAt, err := adapter.BlockTime(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("block time for %s: %w", raw.TxID, err)
	}

	return &verification.Result{
		TxID:        raw.TxID,
		Network:     spec.Network,
		Amount:      decoded.Amount,
		From:        raw.From,
		To:          decoded.Recipient,
		Contract:    raw.Contract,
		BlockNumber: raw.BlockNumber,
		ConfirmedAt: confirmedAt,
		Confirmed:   true,
	}, nil
}

// contractReason classifies a contract that is not the claimed network's token
func (p *Policy) contractReason(spec network.Spec, contract string) verification.Reason {
	if contract == "" {
		return verification.ReasonWrongContract
	}
	actual, ok := p.contracts.NetworkByContract(contract)
	switch {
	case !ok:
		return verification.ReasonUnrecognizedContract
	case actual != spec.Network:
		return verification.ReasonWrongNetwork
	default:
		return verification.ReasonWrongContract
	}
}

func (p *Policy) reject(n network.Network, txID string, reason verification.Reason, expected, actual string) error {
	metrics.RejectionsTotal.WithLabelValues(n.String(), string(reason)).Inc()
	p.logger.Warn("transaction rejected",
		zap.String("network", n.String()),
		zap.String("tx_id", txID),
		zap.String("reason", string(reason)),
		zap.String("expected", expected),
		zap.String("actual", actual),
	)
	return &verification.Rejection{
		Reason:   reason,
		TxID:     txID,
		Expected: expected,
		Actual:   actual,
	}
}
