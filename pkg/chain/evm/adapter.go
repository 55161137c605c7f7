package evm

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

// Adapter verifies token transfers on one EVM network
type Adapter struct {
	spec   network.Spec
	source Source
	caller *chain.Caller
	clock  clock.Clock
	logger *zap.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithClock sets the clock used when a block timestamp cannot be fetched
func WithClock(c clock.Clock) Option {
	return func(a *Adapter) {
		a.clock = c
	}
}

// NewAdapter creates an adapter for spec reading from source
func NewAdapter(spec network.Spec, source Source, limiter chain.Limiter, logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("network", spec.Network.String()))

	a := &Adapter{
		spec:   spec,
		source: source,
		caller: chain.NewCaller(spec.Network, limiter, spec.Timeout, logger),
		clock:  clock.New(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchTransaction loads the transaction and requires a successful receipt
func (a *Adapter) FetchTransaction(ctx context.Context, txID string) (*chain.RawTransaction, error) {
	hash := network.NormalizeTxID(network.FamilyEVM, txID)

	var tx *Transaction
	err := a.caller.Do(ctx, "eth_getTransactionByHash", func(ctx context.Context) error {
		var err error
		tx, err = a.source.TransactionByHash(ctx, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		a.logger.Debug("transaction not found", zap.String("tx_id", hash))
		return nil, chain.ErrNotFound
	}

	var receipt *Receipt
	err = a.caller.Do(ctx, "eth_getTransactionReceipt", func(ctx context.Context) error {
		var err error
		receipt, err = a.source.TransactionReceipt(ctx, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		a.logger.Debug("transaction pending, no receipt yet", zap.String("tx_id", hash))
		return nil, chain.ErrNotFound
	}
	if uint64(receipt.Status) != types.ReceiptStatusSuccessful {
		a.logger.Warn("transaction execution failed",
			zap.String("tx_id", hash),
			zap.Uint64("status", uint64(receipt.Status)))
		return nil, fmt.Errorf("%w: execution status %d", chain.ErrNotFound, uint64(receipt.Status))
	}

	raw := &chain.RawTransaction{
		TxID:      hash,
		Input:     []byte(tx.Input),
		Confirmed: true,
	}
	raw.From, _ = network.AddressFromBytes(network.FamilyEVM, tx.From.Bytes())
	if tx.To != nil {
		raw.Contract, _ = network.AddressFromBytes(network.FamilyEVM, tx.To.Bytes())
	}
	switch {
	case receipt.BlockNumber != nil:
		raw.BlockNumber = receipt.BlockNumber.ToInt().Uint64()
	case tx.BlockNumber != nil:
		raw.BlockNumber = tx.BlockNumber.ToInt().Uint64()
	}

	return raw, nil
}

// BlockTime returns the timestamp of raw's block, or the current time when the
// block cannot be fetched.
func (a *Adapter) BlockTime(ctx context.Context, raw *chain.RawTransaction) (time.Time, error) {
	if !raw.BlockTime.IsZero() {
		return raw.BlockTime, nil
	}

	var block *Block
	err := a.caller.Do(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
		var err error
		block, err = a.source.BlockByNumber(ctx, raw.BlockNumber)
		return err
	})
	if err != nil || block == nil {
		a.logger.Warn("block timestamp unavailable, using current time",
			zap.String("tx_id", raw.TxID),
			zap.Uint64("block", raw.BlockNumber),
			zap.Error(err))
		return a.clock.Now().UTC(), nil
	}

	return time.Unix(int64(block.Timestamp), 0).UTC(), nil
}
