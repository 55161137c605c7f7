package tron

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/calldata"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

const (
	triggerSmartContract = "TriggerSmartContract"
	resultSuccess        = "SUCCESS"
)

// Adapter verifies TRC20 transfers
type Adapter struct {
	spec   network.Spec
	client *Client
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

// NewAdapter creates a TRON adapter
func NewAdapter(spec network.Spec, client *Client, limiter chain.Limiter, logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("network", spec.Network.String()))

	a := &Adapter{
		spec:   spec,
		client: client,
		caller: chain.NewCaller(spec.Network, limiter, spec.Timeout, logger),
		clock:  clock.New(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchTransaction loads the transaction and its execution info.
// Non token calls are returned without input so decoding fails closed.
func (a *Adapter) FetchTransaction(ctx context.Context, txID string) (*chain.RawTransaction, error) {
	id := network.NormalizeTxID(network.FamilyTron, txID)

	var tx *Transaction
	err := a.caller.Do(ctx, "gettransactionbyid", func(ctx context.Context) error {
		var err error
		tx, err = a.client.TransactionByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		a.logger.Debug("transaction not found", zap.String("tx_id", id))
		return nil, chain.ErrNotFound
	}
	if len(tx.Ret) == 0 || tx.Ret[0].ContractRet != resultSuccess {
		ret := ""
		if len(tx.Ret) > 0 {
			ret = tx.Ret[0].ContractRet
		}
		a.logger.Warn("transaction not successful", zap.String("tx_id", id), zap.String("contract_ret", ret))
		return nil, fmt.Errorf("%w: contract result %q", chain.ErrNotFound, ret)
	}

	var info *TransactionInfo
	err = a.caller.Do(ctx, "gettransactioninfobyid", func(ctx context.Context) error {
		var err error
		info, err = a.client.TransactionInfoByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if info == nil {
		a.logger.Debug("transaction not yet in a block", zap.String("tx_id", id))
		return nil, chain.ErrNotFound
	}
	if info.Receipt.Result != "" && info.Receipt.Result != resultSuccess {
		a.logger.Warn("transaction execution failed", zap.String("tx_id", id), zap.String("receipt", info.Receipt.Result))
		return nil, fmt.Errorf("%w: receipt result %q", chain.ErrNotFound, info.Receipt.Result)
	}

	raw := &chain.RawTransaction{
		TxID:        id,
		Confirmed:   true,
		BlockNumber: info.BlockNumber,
	}
	if info.BlockTimeStamp > 0 {
		raw.BlockTime = time.UnixMilli(info.BlockTimeStamp).UTC()
	}

	if len(tx.RawData.Contract) == 0 || tx.RawData.Contract[0].Type != triggerSmartContract {
		a.logger.Info("transaction is not a smart contract call", zap.String("tx_id", id))
		return raw, nil
	}

	value := tx.RawData.Contract[0].Parameter.Value
	raw.Contract, _ = network.NormalizeAddress(network.FamilyTron, value.ContractAddress)
	raw.From, _ = network.NormalizeAddress(network.FamilyTron, value.OwnerAddress)

	input, err := calldata.ParseHexInput(value.Data)
	if err != nil {
		a.logger.Warn("unreadable contract call data", zap.String("tx_id", id), zap.Error(err))
		return raw, nil
	}
	raw.Input = input

	return raw, nil
}

// BlockTime returns the timestamp reported with the transaction info, falling
// back to the block header and then to the current time.
func (a *Adapter) BlockTime(ctx context.Context, raw *chain.RawTransaction) (time.Time, error) {
	if !raw.BlockTime.IsZero() {
		return raw.BlockTime, nil
	}

	var block *Block
	err := a.caller.Do(ctx, "getblockbynum", func(ctx context.Context) error {
		var err error
		block, err = a.client.BlockByNumber(ctx, raw.BlockNumber)
		return err
	})
	if err != nil || block == nil || block.BlockHeader.RawData.Timestamp == 0 {
		a.logger.Warn("block timestamp unavailable, using current time",
			zap.String("tx_id", raw.TxID),
			zap.Uint64("block", raw.BlockNumber),
			zap.Error(err))
		return a.clock.Now().UTC(), nil
	}

	return time.UnixMilli(block.BlockHeader.RawData.Timestamp).UTC(), nil
}
