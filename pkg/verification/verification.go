// Package verification holds the request, result and rejection types of the
// on-chain payment verification engine.
package verification

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

// Request asks whether a transfer of ExpectedAmount to ExpectedAddress happened
// on Network in transaction TxID.
type Request struct {
	Network         network.Network `json:"network"`
	TxID            string          `json:"tx_id"`
	ExpectedAmount  decimal.Decimal `json:"expected_amount"`
	ExpectedAddress string          `json:"expected_address"`
}

// Result is a verified, confirmed USDT transfer. Values are never mutated after
// creation; copies are handed out.
type Result struct {
	TxID        string          `json:"tx_id"`
	Network     network.Network `json:"network"`
	Amount      decimal.Decimal `json:"amount"`
	From        string          `json:"from_address"`
	To          string          `json:"to_address"`
	Contract    string          `json:"contract_address"`
	BlockNumber uint64          `json:"block_number"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
	Confirmed   bool            `json:"confirmed"`
}

// Clone returns an independent copy of r
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Reason classifies a policy rejection
type Reason string

// Rejection reasons, in the order the policy checks them
const (
	ReasonWrongContract        Reason = "wrong_contract"
	ReasonUnrecognizedContract Reason = "unrecognized_contract"
	ReasonWrongNetwork         Reason = "wrong_network"
	ReasonWrongRecipient       Reason = "wrong_recipient"
	ReasonAmountMismatch       Reason = "amount_mismatch"
	ReasonUnconfirmed          Reason = "unconfirmed"
)

// ErrRejected matches any *Rejection with errors.Is
var ErrRejected = errors.New("transaction rejected")

// Rejection is a definitive policy mismatch for one attempt
type Rejection struct {
	Reason   Reason
	TxID     string
	Expected string
	Actual   string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s (expected %s, got %s)", ErrRejected, r.Reason, r.Expected, r.Actual)
}

// Is reports whether target is ErrRejected
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// Definitive reports whether a later attempt cannot change the outcome.
// Confirmation status can still change, transaction content cannot.
func (r *Rejection) Definitive() bool {
	return r.Reason != ReasonUnconfirmed
}

// ReasonOf returns the rejection reason carried by err, if any
func ReasonOf(err error) (Reason, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
