// Package transfer holds the payout transfer domain model and fee arithmetic.
package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

var (
	// ErrNotFound is returned when a transfer lookup finds no matching record
	ErrNotFound = errors.New("transfer not found")
	// ErrDuplicateTx is returned when a transaction hash is already recorded on a transfer
	ErrDuplicateTx = errors.New("transaction already used by another transfer")
)

// Type is the kind of payout the user requested
type Type string

const (
	TypeNameTransfer   Type = "name_transfer"
	TypeAccountDeposit Type = "account_deposit"
)

// Valid reports whether t is a known transfer type
func (t Type) Valid() bool {
	return t == TypeNameTransfer || t == TypeAccountDeposit
}

// Status is the lifecycle state of a transfer
type Status string

const (
	// StatusAwaitingPayment: created, the user has not submitted a transaction yet
	StatusAwaitingPayment Status = "awaiting_payment"
	// StatusPendingReview: payment verified on chain, waiting for an operator
	StatusPendingReview Status = "pending_review"
	StatusCompleted     Status = "completed"
	StatusRejected      Status = "rejected"
	StatusCancelled     Status = "cancelled"
)

// Terminal reports whether no further transition is allowed from s
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPendingReview, StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Recipient identifies who receives the local currency payout
type Recipient struct {
	Name          string `json:"name,omitzero"`
	Number        string `json:"number,omitzero"`
	WalletName    string `json:"wallet_name,omitzero"`
	AccountNumber string `json:"account_number,omitzero"`
	Notes         string `json:"notes,omitzero"`
}

// Transfer is a user's payout request and its verified on-chain payment
type Transfer struct {
	ID             uuid.UUID       `json:"id"`
	UserID         string          `json:"user_id"`
	Type           Type            `json:"type"`
	Recipient      Recipient       `json:"recipient"`
	LocalCurrency  string          `json:"local_currency"`
	Amount         decimal.Decimal `json:"amount"`
	UniqueAmount   decimal.Decimal `json:"unique_amount"`
	Network        network.Network `json:"network"`
	DepositAddress string          `json:"deposit_address"`
	Status         Status          `json:"status"`

	// Set once the payment is verified
	TxHash             string          `json:"tx_hash,omitzero"`
	FromAddress        string          `json:"from_address,omitzero"`
	ContractAddress    string          `json:"contract_address,omitzero"`
	VerifiedAmount     decimal.Decimal `json:"verified_amount"`
	Commission         decimal.Decimal `json:"commission"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	LocalAmount        decimal.Decimal `json:"local_amount"`
	RoundedLocalAmount decimal.Decimal `json:"rounded_local_amount"`
	VerifiedAt         *time.Time      `json:"verified_at,omitzero"`

	// Set by the operator
	ReceiptRef      string     `json:"receipt_ref,omitzero"`
	RejectionReason string     `json:"rejection_reason,omitzero"`
	CompletedAt     *time.Time `json:"completed_at,omitzero"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest starts a transfer
type CreateRequest struct {
	UserID        string          `json:"user_id"`
	Type          Type            `json:"type"`
	Recipient     Recipient       `json:"recipient"`
	LocalCurrency string          `json:"local_currency"`
	Amount        decimal.Decimal `json:"amount"`
	Network       network.Network `json:"network"`
}

// SubmitRequest carries the user's payment transaction
type SubmitRequest struct {
	TxHash string `json:"tx_hash"`
}

// CompleteRequest is the operator confirmation of a paid out transfer
type CompleteRequest struct {
	ReceiptRef string `json:"receipt_ref"`
}

// RejectRequest is the operator refusal of a transfer
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ListFilter selects transfers for the operator queue
type ListFilter struct {
	Status  Status
	UserID  string
	Page    int
	PerPage int
}

// Page is one page of transfers
type Page struct {
	Transfers  []*Transfer `json:"transfers"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
}
