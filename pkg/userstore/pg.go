package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

// uniqueViolation is the SQLSTATE of a unique constraint violation
const uniqueViolation = "23505"

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the user store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateCode(ctx context.Context, c *user.RegistrationCode) error {
	dao := toCodeDao(c)

	_, err := s.db.NewInsert().
		Model(dao).
		Returning("id").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", user.ErrCodeExists, c.Code)
		}
		return fmt.Errorf("failed to create registration code: %w", err)
	}

	c.ID = dao.ID
	return nil
}

func (s *pgStore) GetCode(ctx context.Context, code string) (*user.RegistrationCode, error) {
	dao := new(RegistrationCodeDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("code = ?", code).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get registration code: %w", err)
	}

	return toCode(dao), nil
}

// ListCodes returns every registration code, newest first
func (s *pgStore) ListCodes(ctx context.Context) ([]*user.RegistrationCode, error) {
	var daos []RegistrationCodeDao
	err := s.db.NewSelect().
		Model(&daos).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registration codes: %w", err)
	}

	codes := make([]*user.RegistrationCode, len(daos))
	for i := range daos {
		codes[i] = toCode(&daos[i])
	}
	return codes, nil
}

// UpdateCode overwrites the mutable columns of the stored code
func (s *pgStore) UpdateCode(ctx context.Context, c *user.RegistrationCode) error {
	dao := toCodeDao(c)

	res, err := s.db.NewUpdate().
		Model(dao).
		Column("description", "status", "max_uses", "expires_at", "updated_at").
		Where("code = ?", c.Code).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update registration code: %w", err)
	}

	return requireRow(res, user.ErrCodeNotFound)
}

func (s *pgStore) DeleteCode(ctx context.Context, code string) error {
	res, err := s.db.NewDelete().
		Model((*RegistrationCodeDao)(nil)).
		Where("code = ?", code).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete registration code: %w", err)
	}

	return requireRow(res, user.ErrCodeNotFound)
}

// RegisterUser registers userID with code in one transaction. The code row is
// locked so concurrent registrations cannot exceed its max uses. A user already
// active on the same code is returned unchanged without consuming a use.
func (s *pgStore) RegisterUser(ctx context.Context, userID, code string, now time.Time) (*user.User, error) {
	var registered *user.User

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		codeDao := new(RegistrationCodeDao)
		err := tx.NewSelect().
			Model(codeDao).
			Where("code = ?", code).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", user.ErrCodeUnavailable, code)
			}
			return fmt.Errorf("failed to lock registration code: %w", err)
		}

		existing := new(UserDao)
		err = tx.NewSelect().
			Model(existing).
			Where("user_id = ?", userID).
			Scan(ctx)
		switch {
		case err == nil && existing.RegistrationCode == codeDao.Code && existing.Status == string(user.StatusActive):
			registered = toUser(existing)
			return nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to get user: %w", err)
		}

		if !toCode(codeDao).Usable(now) {
			return fmt.Errorf("%w: %s", user.ErrCodeUnavailable, code)
		}

		dao := &UserDao{
			UserID:           userID,
			RegistrationCode: codeDao.Code,
			Status:           string(user.StatusActive),
			RegisteredAt:     now,
			LastActivityAt:   now,
		}
		_, err = tx.NewInsert().
			Model(dao).
			On("CONFLICT (user_id) DO UPDATE").
			Set("registration_code = EXCLUDED.registration_code").
			Set("status = EXCLUDED.status").
			Set("registered_at = EXCLUDED.registered_at").
			Set("last_activity_at = EXCLUDED.last_activity_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*RegistrationCodeDao)(nil)).
			Set("used_count = used_count + 1").
			Set("last_used_at = ?", now).
			Set("updated_at = ?", now).
			Where("id = ?", codeDao.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to consume registration code: %w", err)
		}

		registered = toUser(dao)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registered, nil
}

func (s *pgStore) GetUser(ctx context.Context, userID string) (*user.User, error) {
	dao := new(UserDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUser(dao), nil
}

// UserExists reports whether userID is registered and active
func (s *pgStore) UserExists(ctx context.Context, userID string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*UserDao)(nil)).
		Where("user_id = ?", userID).
		Where("status = ?", string(user.StatusActive)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user exists: %w", err)
	}
	return exists, nil
}

func requireRow(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
