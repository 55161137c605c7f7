package evm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-resty/resty/v2"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
)

// ExplorerClient talks to the "proxy" module of an Etherscan-compatible API
// (etherscan, bscscan, arbiscan).
type ExplorerClient struct {
	client  *resty.Client
	apiKey  string
	chainID int64
}

// NewExplorerClient creates an explorer client. chainID is sent as the
// "chainid" parameter when non-zero, as required by the multichain v2 API.
func NewExplorerClient(baseURL, apiKey string, chainID int64, timeout time.Duration) *ExplorerClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &ExplorerClient{
		client:  client,
		apiKey:  apiKey,
		chainID: chainID,
	}
}

type proxyEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// TransactionByHash calls eth_getTransactionByHash
func (c *ExplorerClient) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	var tx Transaction
	found, err := c.proxy(ctx, "eth_getTransactionByHash", map[string]string{"txhash": hash}, &tx)
	if err != nil || !found {
		return nil, err
	}
	return &tx, nil
}

// TransactionReceipt calls eth_getTransactionReceipt
func (c *ExplorerClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	var receipt Receipt
	found, err := c.proxy(ctx, "eth_getTransactionReceipt", map[string]string{"txhash": hash}, &receipt)
	if err != nil || !found {
		return nil, err
	}
	return &receipt, nil
}

// BlockByNumber calls eth_getBlockByNumber without transaction bodies
func (c *ExplorerClient) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	var block Block
	params := map[string]string{
		"tag":     hexutil.EncodeUint64(number),
		"boolean": "false",
	}
	found, err := c.proxy(ctx, "eth_getBlockByNumber", params, &block)
	if err != nil || !found {
		return nil, err
	}
	return &block, nil
}

func (c *ExplorerClient) proxy(ctx context.Context, action string, params map[string]string, out any) (bool, error) {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("module", "proxy").
		SetQueryParam("action", action).
		SetQueryParams(params)
	if c.apiKey != "" {
		req.SetQueryParam("apikey", c.apiKey)
	}
	if c.chainID != 0 {
		req.SetQueryParam("chainid", strconv.FormatInt(c.chainID, 10))
	}

	resp, err := req.Get("")
	if err != nil {
		return false, chain.NewHardError(action, 0, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, chain.NewHardError(action, resp.StatusCode(), errors.New(http.StatusText(resp.StatusCode())))
	}

	var env proxyEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return false, chain.NewHardError(action, 0, fmt.Errorf("decode response: %w", err))
	}
	if env.Error != nil {
		return false, chain.NewHardError(action, 0, fmt.Errorf("rpc error %d: %s", env.Error.Code, env.Error.Message))
	}

	result := bytes.TrimSpace(env.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return false, nil
	}

	// Explorer level failures (bad key, rate limit) put a plain string in result.
	if result[0] == '"' {
		var msg string
		_ = json.Unmarshal(result, &msg)
		if env.Message != "" {
			msg = env.Message + ": " + msg
		}
		return false, chain.NewHardError(action, 0, fmt.Errorf("explorer error: %s", msg))
	}

	if err := json.Unmarshal(result, out); err != nil {
		return false, chain.NewHardError(action, 0, fmt.Errorf("decode result: %w", err))
	}
	return true, nil
}
