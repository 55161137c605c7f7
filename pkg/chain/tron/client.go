// Package tron implements the chain.Adapter for TRC20 USDT using the TronGrid HTTP API.
package tron

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
)

// APIKeyHeader carries the TronGrid API key
const APIKeyHeader = "TRON-PRO-API-KEY"

// Transaction is the subset of /wallet/gettransactionbyid the adapter reads
type Transaction struct {
	TxID string `json:"txID"`
	Ret  []struct {
		ContractRet string `json:"contractRet"`
	} `json:"ret"`
	RawData struct {
		Contract []Contract `json:"contract"`
	} `json:"raw_data"`
}

// Contract is one contract call within a transaction
type Contract struct {
	Type      string `json:"type"`
	Parameter struct {
		Value struct {
			Data            string `json:"data"`
			OwnerAddress    string `json:"owner_address"`
			ContractAddress string `json:"contract_address"`
		} `json:"value"`
	} `json:"parameter"`
}

// TransactionInfo is the subset of /wallet/gettransactioninfobyid the adapter reads
type TransactionInfo struct {
	ID             string `json:"id"`
	BlockNumber    uint64 `json:"blockNumber"`
	BlockTimeStamp int64  `json:"blockTimeStamp"`
	Receipt        struct {
		Result string `json:"result"`
	} `json:"receipt"`
}

// Block is the subset of /wallet/getblockbynum the adapter reads
type Block struct {
	BlockHeader struct {
		RawData struct {
			Number    uint64 `json:"number"`
			Timestamp int64  `json:"timestamp"`
		} `json:"raw_data"`
	} `json:"block_header"`
}

// Client calls the TronGrid wallet API
type Client struct {
	client *resty.Client
}

// NewClient creates a TronGrid client for baseURL
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		client.SetHeader(APIKeyHeader, apiKey)
	}
	return &Client{client: client}
}

// TransactionByID returns nil when the node does not know txID
func (c *Client) TransactionByID(ctx context.Context, txID string) (*Transaction, error) {
	var tx Transaction
	found, err := c.post(ctx, "/wallet/gettransactionbyid", map[string]any{"value": txID}, &tx)
	if err != nil || !found {
		return nil, err
	}
	return &tx, nil
}

// TransactionInfoByID returns nil until the transaction is included in a block
func (c *Client) TransactionInfoByID(ctx context.Context, txID string) (*TransactionInfo, error) {
	var info TransactionInfo
	found, err := c.post(ctx, "/wallet/gettransactioninfobyid", map[string]any{"value": txID}, &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

// BlockByNumber fetches a block header
func (c *Client) BlockByNumber(ctx context.Context, number uint64) (*Block, error) {
	var block Block
	found, err := c.post(ctx, "/wallet/getblockbynum", map[string]any{"num": number}, &block)
	if err != nil || !found {
		return nil, err
	}
	return &block, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return false, chain.NewHardError(path, 0, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, chain.NewHardError(path, resp.StatusCode(), errors.New(http.StatusText(resp.StatusCode())))
	}

	payload := bytes.TrimSpace(resp.Body())
	if len(payload) == 0 || bytes.Equal(payload, []byte("{}")) || bytes.Equal(payload, []byte("null")) {
		return false, nil
	}

	var apiErr struct {
		Error string `json:"Error"`
	}
	if err := json.Unmarshal(payload, &apiErr); err != nil {
		return false, chain.NewHardError(path, 0, fmt.Errorf("decode response: %w", err))
	}
	if apiErr.Error != "" {
		return false, chain.NewHardError(path, 0, fmt.Errorf("api error: %s", apiErr.Error))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return false, chain.NewHardError(path, 0, fmt.Errorf("decode response: %w", err))
	}
	return true, nil
}
