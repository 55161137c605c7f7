package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/user"
)

const serviceName = "UserService"

// codeDisplaySize is how much of a registration code appears in logs
const codeDisplaySize = 3

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the user Service.
// Registration codes are redacted in user-facing calls.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// RegisterUser wraps the service method with logging
func (ls *logService) RegisterUser(ctx context.Context, req *user.RegisterRequest) (resp *user.User, err error) {
	fields := ls.fields("RegisterUser")
	if req != nil {
		fields = append(fields,
			zap.String("user_id", req.UserID),
			zap.String("registration_code", redactCode(req.Code)),
		)
	}
	ls.logger.Info("RegisterUser started", fields...)
	defer ls.finish("RegisterUser", time.Now(), fields, &err)
	return ls.svc.RegisterUser(ctx, req)
}

// GetUser wraps the service method with logging
func (ls *logService) GetUser(ctx context.Context, userID string) (resp *user.User, err error) {
	start := time.Now()
	resp, err = ls.svc.GetUser(ctx, userID)
	if err != nil {
		ls.logger.Debug("GetUser failed",
			append(ls.fields("GetUser"),
				zap.String("user_id", userID),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))...)
	}
	return resp, err
}

// CreateCode wraps the service method with logging
func (ls *logService) CreateCode(
	ctx context.Context,
	req *user.CreateCodeRequest,
) (resp *user.RegistrationCode, err error) {
	fields := ls.fields("CreateCode")
	if req != nil {
		fields = append(fields, zap.String("code", user.NormalizeCode(req.Code)))
		if req.MaxUses != nil {
			fields = append(fields, zap.Int("max_uses", *req.MaxUses))
		}
	}
	ls.logger.Info("CreateCode started", fields...)
	defer ls.finish("CreateCode", time.Now(), fields, &err)
	return ls.svc.CreateCode(ctx, req)
}

// ListCodes wraps the service method with logging
func (ls *logService) ListCodes(ctx context.Context) (resp []*user.RegistrationCode, err error) {
	start := time.Now()
	resp, err = ls.svc.ListCodes(ctx)
	if err != nil {
		ls.logger.Error("ListCodes failed",
			append(ls.fields("ListCodes"),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))...)
	}
	return resp, err
}

// UpdateCode wraps the service method with logging
func (ls *logService) UpdateCode(
	ctx context.Context,
	code string,
	req *user.UpdateCodeRequest,
) (resp *user.RegistrationCode, err error) {
	fields := append(ls.fields("UpdateCode"), zap.String("code", user.NormalizeCode(code)))
	if req != nil && req.Status != nil {
		fields = append(fields, zap.String("status", string(*req.Status)))
	}
	ls.logger.Info("UpdateCode started", fields...)
	defer ls.finish("UpdateCode", time.Now(), fields, &err)
	return ls.svc.UpdateCode(ctx, code, req)
}

// DeleteCode wraps the service method with logging
func (ls *logService) DeleteCode(ctx context.Context, code string) (err error) {
	fields := append(ls.fields("DeleteCode"), zap.String("code", user.NormalizeCode(code)))
	ls.logger.Info("DeleteCode started", fields...)
	defer ls.finish("DeleteCode", time.Now(), fields, &err)
	return ls.svc.DeleteCode(ctx, code)
}

func (ls *logService) fields(method string) []zap.Field {
	return []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
	}
}

func (ls *logService) finish(method string, start time.Time, fields []zap.Field, err *error) {
	duration := time.Since(start)
	if *err != nil {
		ls.logger.Error(method+" failed", append(fields, zap.Duration("duration", duration), zap.Error(*err))...)
		return
	}
	ls.logger.Info(method+" completed", append(fields, zap.Duration("duration", duration))...)
}

// redactCode keeps a short prefix of a code for correlation
func redactCode(code string) string {
	code = user.NormalizeCode(code)
	if len(code) <= codeDisplaySize {
		return "***"
	}
	return code[:codeDisplaySize] + "***"
}
