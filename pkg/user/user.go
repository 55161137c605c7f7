// Package user holds registered users and the operator-issued codes they register with.
package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrCodeNotFound = errors.New("registration code not found")
	ErrCodeExists   = errors.New("registration code already exists")
	// ErrCodeUnavailable is returned for inactive, expired or exhausted codes
	ErrCodeUnavailable = errors.New("registration code is not valid")
)

// UnlimitedUses as MaxUses lets a code register any number of users
const UnlimitedUses = -1

// Status is shared by users and registration codes
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is someone allowed to create transfers
type User struct {
	UserID           string    `json:"user_id"`
	RegistrationCode string    `json:"registration_code"`
	Status           Status    `json:"status"`
	RegisteredAt     time.Time `json:"registered_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
}

// RegistrationCode gates user registration
type RegistrationCode struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Description string     `json:"description,omitzero"`
	Status      Status     `json:"status"`
	UsedCount   int        `json:"used_count"`
	MaxUses     int        `json:"max_uses"`
	ExpiresAt   *time.Time `json:"expires_at,omitzero"`
	CreatedBy   string     `json:"created_by,omitzero"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitzero"`
}

// Usable reports whether the code can register one more user at now
func (c *RegistrationCode) Usable(now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return c.MaxUses == UnlimitedUses || c.UsedCount < c.MaxUses
}

// NormalizeCode returns the stored form of a code: trimmed and upper case
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RegisterRequest registers a user with a code
type RegisterRequest struct {
	UserID string `json:"user_id"`
	Code   string `json:"registration_code"`
}

// CreateCodeRequest issues a registration code. A nil MaxUses means unlimited.
type CreateCodeRequest struct {
	Code        string     `json:"code"`
	Description string     `json:"description"`
	MaxUses     *int       `json:"max_uses"`
	ExpiresAt   *time.Time `json:"expires_at"`
	CreatedBy   string     `json:"-"`
}

// UpdateCodeRequest changes the fields that are set
type UpdateCodeRequest struct {
	Description *string    `json:"description"`
	Status      *Status    `json:"status"`
	MaxUses     *int       `json:"max_uses"`
	ExpiresAt   *time.Time `json:"expires_at"`
}
