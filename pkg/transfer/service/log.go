package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
)

const serviceName = "TransferService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the transfer Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// CreateTransfer wraps the service method with logging
func (ls *logService) CreateTransfer(
	ctx context.Context,
	req *transfer.CreateRequest,
) (resp *transfer.Transfer, err error) {
	fields := ls.fields("CreateTransfer")
	if req != nil {
		fields = append(fields,
			zap.String("user_id", req.UserID),
			zap.String("type", string(req.Type)),
			zap.String("network", string(req.Network)),
			zap.String("amount", req.Amount.String()),
		)
	}
	ls.logger.Info("CreateTransfer started", fields...)

	start := time.Now()
	defer func() {
		if resp != nil {
			fields = append(fields, zap.String("transfer_id", resp.ID.String()))
		}
		ls.finish("CreateTransfer", start, fields, &resp, &err)
	}()

	return ls.svc.CreateTransfer(ctx, req)
}

// GetTransfer wraps the service method with logging
func (ls *logService) GetTransfer(ctx context.Context, id uuid.UUID) (resp *transfer.Transfer, err error) {
	start := time.Now()
	resp, err = ls.svc.GetTransfer(ctx, id)
	if err != nil {
		ls.logger.Debug("GetTransfer failed",
			append(ls.fields("GetTransfer"),
				zap.String("transfer_id", id.String()),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))...)
	}
	return resp, err
}

// SubmitTransaction wraps the service method with logging
func (ls *logService) SubmitTransaction(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.SubmitRequest,
) (resp *transfer.Transfer, err error) {
	fields := append(ls.fields("SubmitTransaction"), zap.String("transfer_id", id.String()))
	if req != nil {
		fields = append(fields, zap.String("tx_hash", req.TxHash))
	}
	ls.logger.Info("SubmitTransaction started", fields...)
	defer ls.finish("SubmitTransaction", time.Now(), fields, &resp, &err)
	return ls.svc.SubmitTransaction(ctx, id, req)
}

// CancelTransfer wraps the service method with logging
func (ls *logService) CancelTransfer(ctx context.Context, id uuid.UUID) (resp *transfer.Transfer, err error) {
	fields := append(ls.fields("CancelTransfer"), zap.String("transfer_id", id.String()))
	ls.logger.Info("CancelTransfer started", fields...)
	defer ls.finish("CancelTransfer", time.Now(), fields, &resp, &err)
	return ls.svc.CancelTransfer(ctx, id)
}

// CompleteTransfer wraps the service method with logging
func (ls *logService) CompleteTransfer(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.CompleteRequest,
) (resp *transfer.Transfer, err error) {
	fields := append(ls.fields("CompleteTransfer"), zap.String("transfer_id", id.String()))
	if req != nil {
		fields = append(fields, zap.String("receipt_ref", req.ReceiptRef))
	}
	ls.logger.Info("CompleteTransfer started", fields...)
	defer ls.finish("CompleteTransfer", time.Now(), fields, &resp, &err)
	return ls.svc.CompleteTransfer(ctx, id, req)
}

// RejectTransfer wraps the service method with logging
func (ls *logService) RejectTransfer(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.RejectRequest,
) (resp *transfer.Transfer, err error) {
	fields := append(ls.fields("RejectTransfer"), zap.String("transfer_id", id.String()))
	if req != nil {
		fields = append(fields, zap.String("reason", req.Reason))
	}
	ls.logger.Info("RejectTransfer started", fields...)
	defer ls.finish("RejectTransfer", time.Now(), fields, &resp, &err)
	return ls.svc.RejectTransfer(ctx, id, req)
}

// ListTransfers wraps the service method with logging
func (ls *logService) ListTransfers(ctx context.Context, filter transfer.ListFilter) (*transfer.Page, error) {
	start := time.Now()
	page, err := ls.svc.ListTransfers(ctx, filter)
	if err != nil {
		ls.logger.Error("ListTransfers failed",
			append(ls.fields("ListTransfers"),
				zap.String("status", string(filter.Status)),
				zap.Int("page", filter.Page),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))...)
	}
	return page, err
}

func (ls *logService) fields(method string) []zap.Field {
	return []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
	}
}

func (ls *logService) finish(method string, start time.Time, fields []zap.Field, resp **transfer.Transfer, err *error) {
	duration := time.Since(start)
	if *err != nil {
		ls.logger.Error(method+" failed", append(fields, zap.Duration("duration", duration), zap.Error(*err))...)
		return
	}
	if t := *resp; t != nil {
		fields = append(fields, zap.String("status", string(t.Status)))
	}
	ls.logger.Info(method+" completed", append(fields, zap.Duration("duration", duration))...)
}
