package transferstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
)

// TransferDao is a data access object that maps directly to the 'transfers' table in PostgreSQL.
type TransferDao struct {
	bun.BaseModel  `bun:"table:transfers,alias:t"`
	ID             uuid.UUID       `bun:"id,pk,type:uuid"`
	UserID         string          `bun:"user_id,notnull,type:varchar(64)"`
	Type           string          `bun:"type,notnull,type:varchar(32)"`
	Status         string          `bun:"status,notnull,type:varchar(32)"`
	Network        string          `bun:"network,notnull,type:varchar(16)"`
	LocalCurrency  string          `bun:"local_currency,notnull,type:varchar(8)"`
	Amount         decimal.Decimal `bun:"amount,notnull,type:numeric(38,18)"`
	UniqueAmount   decimal.Decimal `bun:"unique_amount,notnull,type:numeric(38,18)"`
	DepositAddress string          `bun:"deposit_address,notnull,type:varchar(64)"`

	RecipientName          *string `bun:"recipient_name,type:varchar(255)"`
	RecipientNumber        *string `bun:"recipient_number,type:varchar(64)"`
	RecipientWalletName    *string `bun:"recipient_wallet_name,type:varchar(128)"`
	RecipientAccountNumber *string `bun:"recipient_account_number,type:varchar(64)"`
	RecipientNotes         *string `bun:"recipient_notes,type:text"`

	TxHash             *string          `bun:"tx_hash,type:varchar(80)"`
	FromAddress        *string          `bun:"from_address,type:varchar(64)"`
	ContractAddress    *string          `bun:"contract_address,type:varchar(64)"`
	VerifiedAmount     *decimal.Decimal `bun:"verified_amount,type:numeric(38,18)"`
	Commission         *decimal.Decimal `bun:"commission,type:numeric(38,18)"`
	NetAmount          *decimal.Decimal `bun:"net_amount,type:numeric(38,18)"`
	ExchangeRate       *decimal.Decimal `bun:"exchange_rate,type:numeric(38,18)"`
	LocalAmount        *decimal.Decimal `bun:"local_amount,type:numeric(38,18)"`
	RoundedLocalAmount *decimal.Decimal `bun:"rounded_local_amount,type:numeric(38,18)"`
	VerifiedAt         *time.Time       `bun:"verified_at"`

	ReceiptRef      *string    `bun:"receipt_ref,type:varchar(255)"`
	RejectionReason *string    `bun:"rejection_reason,type:text"`
	CompletedAt     *time.Time `bun:"completed_at"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// toTransferDao converts a transfer.Transfer to TransferDao.
func toTransferDao(t *transfer.Transfer) *TransferDao {
	dao := &TransferDao{
		ID:                     t.ID,
		UserID:                 t.UserID,
		Type:                   string(t.Type),
		Status:                 string(t.Status),
		Network:                t.Network.String(),
		LocalCurrency:          t.LocalCurrency,
		Amount:                 t.Amount,
		UniqueAmount:           t.UniqueAmount,
		DepositAddress:         t.DepositAddress,
		RecipientName:          optString(t.Recipient.Name),
		RecipientNumber:        optString(t.Recipient.Number),
		RecipientWalletName:    optString(t.Recipient.WalletName),
		RecipientAccountNumber: optString(t.Recipient.AccountNumber),
		RecipientNotes:         optString(t.Recipient.Notes),
		TxHash:                 optString(t.TxHash),
		FromAddress:            optString(t.FromAddress),
		ContractAddress:        optString(t.ContractAddress),
		VerifiedAt:             t.VerifiedAt,
		ReceiptRef:             optString(t.ReceiptRef),
		RejectionReason:        optString(t.RejectionReason),
		CompletedAt:            t.CompletedAt,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}

	// Payout figures only exist once the payment is verified
	if t.TxHash != "" {
		dao.VerifiedAmount = &t.VerifiedAmount
		dao.Commission = &t.Commission
		dao.NetAmount = &t.NetAmount
		dao.ExchangeRate = &t.ExchangeRate
		dao.LocalAmount = &t.LocalAmount
		dao.RoundedLocalAmount = &t.RoundedLocalAmount
	}

	return dao
}

// toTransfer converts a TransferDao to transfer.Transfer.
func toTransfer(dao *TransferDao) *transfer.Transfer {
	return &transfer.Transfer{
		ID:     dao.ID,
		UserID: dao.UserID,
		Type:   transfer.Type(dao.Type),
		Recipient: transfer.Recipient{
			Name:          deref(dao.RecipientName),
			Number:        deref(dao.RecipientNumber),
			WalletName:    deref(dao.RecipientWalletName),
			AccountNumber: deref(dao.RecipientAccountNumber),
			Notes:         deref(dao.RecipientNotes),
		},
		LocalCurrency:      dao.LocalCurrency,
		Amount:             dao.Amount,
		UniqueAmount:       dao.UniqueAmount,
		Network:            network.Network(dao.Network),
		DepositAddress:     dao.DepositAddress,
		Status:             transfer.Status(dao.Status),
		TxHash:             deref(dao.TxHash),
		FromAddress:        deref(dao.FromAddress),
		ContractAddress:    deref(dao.ContractAddress),
		VerifiedAmount:     derefDecimal(dao.VerifiedAmount),
		Commission:         derefDecimal(dao.Commission),
		NetAmount:          derefDecimal(dao.NetAmount),
		ExchangeRate:       derefDecimal(dao.ExchangeRate),
		LocalAmount:        derefDecimal(dao.LocalAmount),
		RoundedLocalAmount: derefDecimal(dao.RoundedLocalAmount),
		VerifiedAt:         dao.VerifiedAt,
		ReceiptRef:         deref(dao.ReceiptRef),
		RejectionReason:    deref(dao.RejectionReason),
		CompletedAt:        dao.CompletedAt,
		CreatedAt:          dao.CreatedAt,
		UpdatedAt:          dao.UpdatedAt,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
