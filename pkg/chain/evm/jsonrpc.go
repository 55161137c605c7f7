package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
)

// RPCClient reads transactions straight from a JSON-RPC node
type RPCClient struct {
	client *rpc.Client
}

// DialRPC connects to the node at url
func DialRPC(ctx context.Context, url string) (*RPCClient, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return &RPCClient{client: client}, nil
}

// Close releases the underlying connection
func (c *RPCClient) Close() {
	c.client.Close()
}

// TransactionByHash calls eth_getTransactionByHash
func (c *RPCClient) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	return call[Transaction](ctx, c.client, "eth_getTransactionByHash", hash)
}

// TransactionReceipt calls eth_getTransactionReceipt
func (c *RPCClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	return call[Receipt](ctx, c.client, "eth_getTransactionReceipt", hash)
}

// BlockByNumber calls eth_getBlockByNumber without transaction bodies
func (c *RPCClient) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	return call[Block](ctx, c.client, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false)
}

func call[T any](ctx context.Context, client *rpc.Client, method string, args ...any) (*T, error) {
	var raw json.RawMessage
	if err := client.CallContext(ctx, &raw, method, args...); err != nil {
		var httpErr rpc.HTTPError
		if errors.As(err, &httpErr) {
			return nil, chain.NewHardError(method, httpErr.StatusCode, err)
		}
		return nil, chain.NewHardError(method, 0, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, chain.NewHardError(method, 0, fmt.Errorf("decode result: %w", err))
	}
	return &out, nil
}
