package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/auth"
	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

const maxIDLength = 64

// Store is the narrow data-access interface for the user service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	CreateCode(ctx context.Context, c *user.RegistrationCode) error
	GetCode(ctx context.Context, code string) (*user.RegistrationCode, error)
	ListCodes(ctx context.Context) ([]*user.RegistrationCode, error)
	UpdateCode(ctx context.Context, c *user.RegistrationCode) error
	DeleteCode(ctx context.Context, code string) error
	RegisterUser(ctx context.Context, userID, code string, now time.Time) (*user.User, error)
	GetUser(ctx context.Context, userID string) (*user.User, error)
}

// Service defines the interface for user registration and code management
type Service interface {
	RegisterUser(ctx context.Context, req *user.RegisterRequest) (*user.User, error)
	GetUser(ctx context.Context, userID string) (*user.User, error)
	CreateCode(ctx context.Context, req *user.CreateCodeRequest) (*user.RegistrationCode, error)
	ListCodes(ctx context.Context) ([]*user.RegistrationCode, error)
	UpdateCode(ctx context.Context, code string, req *user.UpdateCodeRequest) (*user.RegistrationCode, error)
	DeleteCode(ctx context.Context, code string) error
}

type userService struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a new user service
func NewService(store Store, logger *zap.Logger) Service {
	return &userService{
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// RegisterUser registers a user with an active registration code
func (s *userService) RegisterUser(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	if req == nil {
		return nil, apperrors.BadRequestError(nil, "user_id is required")
	}
	userID, err := validID(req.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	code, err := validID(user.NormalizeCode(req.Code), "registration_code")
	if err != nil {
		return nil, err
	}

	usr, err := s.store.RegisterUser(ctx, userID, code, s.now())
	if err != nil {
		if errors.Is(err, user.ErrCodeUnavailable) {
			return nil, apperrors.ForbiddenError(err, user.ErrCodeUnavailable.Error())
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return usr, nil
}

// GetUser returns a registered user
func (s *userService) GetUser(ctx context.Context, userID string) (*user.User, error) {
	usr, err := s.store.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, user.ErrUserNotFound.Error())
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return usr, nil
}

// CreateCode issues a new active registration code. The creating operator is
// taken from the request context when present.
func (s *userService) CreateCode(ctx context.Context, req *user.CreateCodeRequest) (*user.RegistrationCode, error) {
	if req == nil {
		return nil, apperrors.BadRequestError(nil, "code is required")
	}
	code, err := validID(user.NormalizeCode(req.Code), "code")
	if err != nil {
		return nil, err
	}

	now := s.now()
	c := &user.RegistrationCode{
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		Status:      user.StatusActive,
		MaxUses:     user.UnlimitedUses,
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.MaxUses != nil {
		c.MaxUses = *req.MaxUses
	}
	if operator, ok := auth.OperatorFromContext(ctx); ok && c.CreatedBy == "" {
		c.CreatedBy = operator
	}
	if err := validLimits(c, c.ExpiresAt, now); err != nil {
		return nil, err
	}

	if err := s.store.CreateCode(ctx, c); err != nil {
		if errors.Is(err, user.ErrCodeExists) {
			return nil, apperrors.ConflictError(err, user.ErrCodeExists.Error())
		}
		return nil, fmt.Errorf("failed to create registration code: %w", err)
	}
	return c, nil
}

// ListCodes returns every registration code, newest first
func (s *userService) ListCodes(ctx context.Context) ([]*user.RegistrationCode, error) {
	codes, err := s.store.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registration codes: %w", err)
	}
	return codes, nil
}

// UpdateCode applies the set fields of req to an existing code
func (s *userService) UpdateCode(
	ctx context.Context,
	code string,
	req *user.UpdateCodeRequest,
) (*user.RegistrationCode, error) {
	if req == nil {
		return nil, apperrors.BadRequestError(nil, "nothing to update")
	}

	c, err := s.store.GetCode(ctx, user.NormalizeCode(code))
	if err != nil {
		return nil, codeLookupError(err)
	}

	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.BadRequestError(nil, "invalid status")
		}
		c.Status = *req.Status
	}
	if req.MaxUses != nil {
		c.MaxUses = *req.MaxUses
	}
	if req.ExpiresAt != nil {
		c.ExpiresAt = req.ExpiresAt
	}

	now := s.now()
	if err := validLimits(c, req.ExpiresAt, now); err != nil {
		return nil, err
	}
	c.UpdatedAt = now

	if err := s.store.UpdateCode(ctx, c); err != nil {
		return nil, codeLookupError(err)
	}
	return c, nil
}

// DeleteCode removes a registration code. Users already registered with it stay registered.
func (s *userService) DeleteCode(ctx context.Context, code string) error {
	if err := s.store.DeleteCode(ctx, user.NormalizeCode(code)); err != nil {
		return codeLookupError(err)
	}
	return nil
}

func codeLookupError(err error) error {
	if errors.Is(err, user.ErrCodeNotFound) {
		return apperrors.ResourceNotFoundError(err, user.ErrCodeNotFound.Error())
	}
	return fmt.Errorf("failed to access registration code: %w", err)
}

func validID(v, field string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperrors.BadRequestError(nil, field+" is required")
	}
	if len(v) > maxIDLength {
		return "", apperrors.BadRequestError(nil, fmt.Sprintf("%s must be at most %d characters", field, maxIDLength))
	}
	return v, nil
}

// validLimits checks max uses against c and a newly set expiry against now
func validLimits(c *user.RegistrationCode, expiresAt *time.Time, now time.Time) error {
	if c.MaxUses != user.UnlimitedUses && c.MaxUses < 1 {
		return apperrors.BadRequestError(nil, "max_uses must be positive or -1 for unlimited")
	}
	if c.MaxUses != user.UnlimitedUses && c.MaxUses < c.UsedCount {
		return apperrors.BadRequestError(nil, "max_uses is below the number of uses so far")
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return apperrors.BadRequestError(nil, "expires_at must be in the future")
	}
	return nil
}
