// Package chain defines the contract between the verification engine and the
// per-network RPC adapters.
package chain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNotFound means the transaction is absent, not yet confirmed, or failed on-chain.
// A reverted transfer never pays out, so it is reported the same way as a missing one.
var ErrNotFound = errors.New("transaction not found")

// HardError wraps a failed provider call: transport failure, timeout, non-200
// response or an error payload from the explorer.
type HardError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *HardError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *HardError) Unwrap() error {
	return e.Err
}

// NewHardError wraps err as a HardError for operation op
func NewHardError(op string, statusCode int, err error) error {
	return &HardError{Op: op, StatusCode: statusCode, Err: err}
}

// IsTransient reports whether err is a provider or network failure rather than
// a statement about the transaction itself.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var hard *HardError
	if errors.As(err, &hard) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// RawTransaction is the adapter's view of a token transfer transaction
type RawTransaction struct {
	TxID        string
	Contract    string // canonical address of the called contract
	From        string // canonical sender address
	Input       []byte // contract call data including the method selector
	Confirmed   bool
	BlockNumber uint64
	BlockTime   time.Time // zero when the provider did not report it
}

// Adapter fetches transactions from one network
type Adapter interface {
	// FetchTransaction returns the transaction and its receipt status.
	// It returns ErrNotFound when there is nothing to verify yet.
	FetchTransaction(ctx context.Context, txID string) (*RawTransaction, error)
	// BlockTime returns the timestamp of the block that included raw.
	BlockTime(ctx context.Context, raw *RawTransaction) (time.Time, error)
}
