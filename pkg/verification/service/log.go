package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

const serviceName = "VerificationService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the verification Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// VerifyTransactionByHash wraps the service method with logging
func (ls *logService) VerifyTransactionByHash(
	ctx context.Context,
	req *verification.Request,
) (resp *verification.Result, err error) {
	start := time.Now()

	fields := []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", "VerifyTransactionByHash"),
	}
	if req != nil {
		fields = append(fields,
			zap.String("network", req.Network.String()),
			zap.String("tx_id", req.TxID),
			zap.String("expected_amount", req.ExpectedAmount.String()),
			zap.String("expected_address", req.ExpectedAddress),
		)
	}

	ls.logger.Info("VerifyTransactionByHash started", fields...)

	defer func() {
		duration := time.Since(start)

		switch {
		case err != nil:
			ls.logger.Error("VerifyTransactionByHash failed",
				append(fields, zap.Duration("duration", duration), zap.Error(err))...)
		case resp == nil:
			ls.logger.Warn("VerifyTransactionByHash not verified",
				append(fields, zap.Duration("duration", duration))...)
		default:
			ls.logger.Info("VerifyTransactionByHash completed",
				append(fields,
					zap.String("amount", resp.Amount.String()),
					zap.String("from_address", resp.From),
					zap.Uint64("block_number", resp.BlockNumber),
					zap.Time("confirmed_at", resp.ConfirmedAt),
					zap.Duration("duration", duration),
				)...)
		}
	}()

	return ls.svc.VerifyTransactionByHash(ctx, req)
}
