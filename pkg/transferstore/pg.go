package transferstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
)

// uniqueViolation is the SQLSTATE of a unique constraint violation
const uniqueViolation = "23505"

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the transfer store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateTransfer(ctx context.Context, t *transfer.Transfer) error {
	dao := toTransferDao(t)

	_, err := s.db.NewInsert().
		Model(dao).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", transfer.ErrDuplicateTx, t.TxHash)
		}
		return fmt.Errorf("failed to create transfer: %w", err)
	}

	return nil
}

func (s *pgStore) GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	dao := new(TransferDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transfer.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	return toTransfer(dao), nil
}

// UpdateTransfer overwrites every column of the stored transfer except created_at
func (s *pgStore) UpdateTransfer(ctx context.Context, t *transfer.Transfer) error {
	dao := toTransferDao(t)

	res, err := s.db.NewUpdate().
		Model(dao).
		ExcludeColumn("created_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", transfer.ErrDuplicateTx, t.TxHash)
		}
		return fmt.Errorf("failed to update transfer: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return transfer.ErrNotFound
	}

	return nil
}

func (s *pgStore) RecordExistsByTxID(ctx context.Context, txHash string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*TransferDao)(nil)).
		Where("tx_hash = ?", txHash).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction exists: %w", err)
	}
	return exists, nil
}

// ListTransfers returns the filtered page, newest first, and the total number of matches
func (s *pgStore) ListTransfers(ctx context.Context, filter transfer.ListFilter) ([]*transfer.Transfer, int, error) {
	var daos []TransferDao
	query := s.db.NewSelect().Model(&daos)

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	query = query.Order("created_at DESC", "id")
	if filter.PerPage > 0 {
		page := max(filter.Page, 1)
		query = query.Limit(filter.PerPage).Offset((page - 1) * filter.PerPage)
	}

	total, err := query.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}

	transfers := make([]*transfer.Transfer, len(daos))
	for i := range daos {
		transfers[i] = toTransfer(&daos[i])
	}
	return transfers, total, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
