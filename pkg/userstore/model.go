package userstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

// UserDao is a data access object that maps directly to the 'users' table in PostgreSQL.
type UserDao struct {
	bun.BaseModel    `bun:"table:users,alias:u"`
	UserID           string    `bun:"user_id,pk,type:varchar(64)"`
	RegistrationCode string    `bun:"registration_code,notnull,type:varchar(64)"`
	Status           string    `bun:"status,notnull,type:varchar(16)"`
	RegisteredAt     time.Time `bun:"registered_at,notnull"`
	LastActivityAt   time.Time `bun:"last_activity_at,notnull"`
}

func toUserDao(usr *user.User) *UserDao {
	return &UserDao{
		UserID:           usr.UserID,
		RegistrationCode: usr.RegistrationCode,
		Status:           string(usr.Status),
		RegisteredAt:     usr.RegisteredAt,
		LastActivityAt:   usr.LastActivityAt,
	}
}

func toUser(dao *UserDao) *user.User {
	return &user.User{
		UserID:           dao.UserID,
		RegistrationCode: dao.RegistrationCode,
		Status:           user.Status(dao.Status),
		RegisteredAt:     dao.RegisteredAt.UTC(),
		LastActivityAt:   dao.LastActivityAt.UTC(),
	}
}

// RegistrationCodeDao is a data access object that maps directly to the 'registration_codes' table in PostgreSQL.
type RegistrationCodeDao struct {
	bun.BaseModel `bun:"table:registration_codes,alias:rc"`
	ID            int64      `bun:"id,pk,autoincrement"`
	Code          string     `bun:"code,notnull,type:varchar(64)"`
	Description   *string    `bun:"description,type:varchar(255)"`
	Status        string     `bun:"status,notnull,type:varchar(16)"`
	UsedCount     int        `bun:"used_count,notnull,default:0"`
	MaxUses       int        `bun:"max_uses,notnull,default:-1"`
	ExpiresAt     *time.Time `bun:"expires_at"`
	CreatedBy     *string    `bun:"created_by,type:varchar(255)"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	LastUsedAt    *time.Time `bun:"last_used_at"`
}

func toCodeDao(c *user.RegistrationCode) *RegistrationCodeDao {
	dao := &RegistrationCodeDao{
		ID:         c.ID,
		Code:       c.Code,
		Status:     string(c.Status),
		UsedCount:  c.UsedCount,
		MaxUses:    c.MaxUses,
		ExpiresAt:  c.ExpiresAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		LastUsedAt: c.LastUsedAt,
	}
	if c.Description != "" {
		dao.Description = &c.Description
	}
	if c.CreatedBy != "" {
		dao.CreatedBy = &c.CreatedBy
	}
	return dao
}

func toCode(dao *RegistrationCodeDao) *user.RegistrationCode {
	c := &user.RegistrationCode{
		ID:         dao.ID,
		Code:       dao.Code,
		Status:     user.Status(dao.Status),
		UsedCount:  dao.UsedCount,
		MaxUses:    dao.MaxUses,
		ExpiresAt:  utcPtr(dao.ExpiresAt),
		CreatedAt:  dao.CreatedAt.UTC(),
		UpdatedAt:  dao.UpdatedAt.UTC(),
		LastUsedAt: utcPtr(dao.LastUsedAt),
	}
	if dao.Description != nil {
		c.Description = *dao.Description
	}
	if dao.CreatedBy != nil {
		c.CreatedBy = *dao.CreatedBy
	}
	return c
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
