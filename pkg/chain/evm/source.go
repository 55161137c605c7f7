// Package evm implements the chain.Adapter for EVM networks, backed either by an
// Etherscan-style explorer proxy API or a plain JSON-RPC node.
package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Transaction is the subset of eth_getTransactionByHash the adapter reads
type Transaction struct {
	Hash        string          `json:"hash"`
	From        common.Address  `json:"from"`
	To          *common.Address `json:"to"`
	Input       hexutil.Bytes   `json:"input"`
	BlockNumber *hexutil.Big    `json:"blockNumber"`
}

// Receipt is the subset of eth_getTransactionReceipt the adapter reads
type Receipt struct {
	Status      hexutil.Uint64 `json:"status"`
	BlockNumber *hexutil.Big   `json:"blockNumber"`
}

// Block is the subset of eth_getBlockByNumber the adapter reads
type Block struct {
	Number    *hexutil.Big   `json:"number"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

// Source performs the three provider calls needed to verify a transfer.
// A nil result with a nil error means the provider has no such object.
type Source interface {
	TransactionByHash(ctx context.Context, hash string) (*Transaction, error)
	TransactionReceipt(ctx context.Context, hash string) (*Receipt, error)
	BlockByNumber(ctx context.Context, number uint64) (*Block, error)
}
