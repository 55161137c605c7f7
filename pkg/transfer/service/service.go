package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/notify"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/policy"
	verifier "github.com/chainsafe/usdt-payout-verifier/pkg/verification/service"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

var (
	ErrNotVerified        = errors.New("payment could not be verified, retry or cancel")
	ErrInvalidTransition  = errors.New("transfer is not in a state that allows this action")
	ErrUnsupportedFiat    = errors.New("unsupported local currency")
	ErrNetworkUnavailable = errors.New("network is not accepting payments")
	ErrPaymentMismatch    = errors.New("payment does not match the transfer amount or deposit address")
	ErrUserNotRegistered  = errors.New("user is not registered")
)

// Store is the narrow data-access interface for the transfer service.
// Defined here to keep transfer service decoupled from transferstore implementation details.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	CreateTransfer(ctx context.Context, t *transfer.Transfer) error
	GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	UpdateTransfer(ctx context.Context, t *transfer.Transfer) error
	RecordExistsByTxID(ctx context.Context, txHash string) (bool, error)
	ListTransfers(ctx context.Context, filter transfer.ListFilter) ([]*transfer.Transfer, int, error)
}

// Users reports whether a user may create transfers
//
//go:generate mockery --name Users --output mocks --outpkg mocks --filename mock_users.go --with-expecter
type Users interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Networks resolves network settings for transfers
type Networks interface {
	Spec(n network.Network) (network.Spec, bool)
	DepositAddress(n network.Network) (string, error)
	NetworkByContract(addr string) (network.Network, bool)
}

// Service defines the interface for the transfer workflow
type Service interface {
	CreateTransfer(ctx context.Context, req *transfer.CreateRequest) (*transfer.Transfer, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	SubmitTransaction(ctx context.Context, id uuid.UUID, req *transfer.SubmitRequest) (*transfer.Transfer, error)
	CancelTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	CompleteTransfer(ctx context.Context, id uuid.UUID, req *transfer.CompleteRequest) (*transfer.Transfer, error)
	RejectTransfer(ctx context.Context, id uuid.UUID, req *transfer.RejectRequest) (*transfer.Transfer, error)
	ListTransfers(ctx context.Context, filter transfer.ListFilter) (*transfer.Page, error)
}

type transferService struct {
	store         Store
	users         Users
	networks      Networks
	verifier      verifier.Service
	notifier      notify.Notifier
	fees          transfer.FeeSchedule
	exchangeRates map[string]decimal.Decimal
	suffix        transfer.SuffixFunc
	tolerance     decimal.Decimal
	logger        *zap.Logger
}

// Option configures the transfer service
type Option func(*transferService)

// WithSuffixFunc overrides the random suffix used for unique amounts
func WithSuffixFunc(fn transfer.SuffixFunc) Option {
	return func(s *transferService) {
		s.suffix = fn
	}
}

// WithAmountTolerance sets how far a verified amount may be from the unique amount
func WithAmountTolerance(tolerance decimal.Decimal) Option {
	return func(s *transferService) {
		if tolerance.IsPositive() {
			s.tolerance = tolerance
		}
	}
}

// NewService creates a new transfer service
func NewService(
	store Store,
	users Users,
	networks Networks,
	verifierSvc verifier.Service,
	notifier notify.Notifier,
	fees transfer.FeeSchedule,
	exchangeRates map[string]decimal.Decimal,
	logger *zap.Logger,
	opts ...Option,
) Service {
	rates := make(map[string]decimal.Decimal, len(exchangeRates))
	for currency, rate := range exchangeRates {
		rates[strings.ToUpper(currency)] = rate
	}
	s := &transferService{
		store:         store,
		users:         users,
		networks:      networks,
		verifier:      verifierSvc,
		notifier:      notifier,
		fees:          fees,
		exchangeRates: rates,
		suffix:        transfer.RandomSuffix,
		tolerance:     policy.DefaultTolerance,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransfer validates the request, assigns the deposit address and the
// unique amount the user must pay, and stores the transfer as awaiting payment.
// Only registered active users may create transfers.
func (s *transferService) CreateTransfer(ctx context.Context, req *transfer.CreateRequest) (*transfer.Transfer, error) {
	if req == nil || strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.BadRequestError(nil, "user_id is required")
	}
	if !req.Type.Valid() {
		return nil, apperrors.BadRequestError(nil, "invalid transfer type")
	}

	n, err := network.Parse(string(req.Network))
	if err != nil {
		return nil, apperrors.BadRequestError(err, "unsupported network")
	}
	if _, ok := s.networks.Spec(n); !ok {
		return nil, apperrors.BadRequestError(network.ErrUnsupportedNetwork, "unsupported network")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.LocalCurrency))
	if _, ok := s.exchangeRates[currency]; !ok {
		return nil, apperrors.BadRequestError(fmt.Errorf("%w: %q", ErrUnsupportedFiat, req.LocalCurrency), ErrUnsupportedFiat.Error())
	}

	if err := s.fees.CheckLimits(req.Amount); err != nil {
		return nil, apperrors.BadRequestError(err, err.Error())
	}

	deposit, err := s.networks.DepositAddress(n)
	if err != nil {
		return nil, apperrors.BadRequestError(fmt.Errorf("%w: %w", ErrNetworkUnavailable, err), ErrNetworkUnavailable.Error())
	}

	userID := strings.TrimSpace(req.UserID)
	registered, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user registration: %w", err)
	}
	if !registered {
		return nil, apperrors.ForbiddenError(fmt.Errorf("%w: %s", ErrUserNotRegistered, userID), ErrUserNotRegistered.Error())
	}

	now := time.Now().UTC()
	t := &transfer.Transfer{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           req.Type,
		Recipient:      req.Recipient,
		LocalCurrency:  currency,
		Amount:         req.Amount,
		UniqueAmount:   transfer.UniqueAmount(req.Amount, s.suffix),
		Network:        n,
		DepositAddress: deposit,
		Status:         transfer.StatusAwaitingPayment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateTransfer(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}
	metrics.TransfersTotal.WithLabelValues(n.String(), string(t.Status)).Inc()
	return t, nil
}

// GetTransfer returns a transfer by id
func (s *transferService) GetTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	return s.load(ctx, id)
}

// SubmitTransaction verifies the user's payment transaction for a transfer.
//
// The process:
//  1. Rejects transactions already recorded on any transfer
//  2. Verifies the transaction pays the unique amount to the deposit address
//  3. Checks the paying contract belongs to the transfer's network
//  4. Computes commission and local payout
//  5. Stores the transfer as pending review and notifies operators
//
// An unverified payment leaves the transfer unchanged and returns ErrNotVerified
// so the user can retry or cancel.
func (s *transferService) SubmitTransaction(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.SubmitRequest,
) (*transfer.Transfer, error) {
	if req == nil || strings.TrimSpace(req.TxHash) == "" {
		return nil, apperrors.BadRequestError(nil, "tx_hash is required")
	}

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != transfer.StatusAwaitingPayment {
		return nil, apperrors.ConflictError(ErrInvalidTransition, fmt.Sprintf("transfer is %s", t.Status))
	}

	spec, ok := s.networks.Spec(t.Network)
	if !ok {
		return nil, apperrors.BadRequestError(network.ErrUnsupportedNetwork, "unsupported network")
	}
	if !network.ValidTxID(spec.Family, req.TxHash) {
		return nil, apperrors.BadRequestError(nil, "invalid transaction id")
	}
	txHash := network.NormalizeTxID(spec.Family, req.TxHash)

	exists, err := s.store.RecordExistsByTxID(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to check transaction usage: %w", err)
	}
	if exists {
		return nil, apperrors.ConflictError(transfer.ErrDuplicateTx, transfer.ErrDuplicateTx.Error())
	}

	result, err := s.verifier.VerifyTransactionByHash(ctx, &verification.Request{
		Network:         t.Network,
		TxID:            txHash,
		ExpectedAmount:  t.UniqueAmount,
		ExpectedAddress: t.DepositAddress,
	})
	if err != nil {
		// The request deadline ran out before the retries did
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.UnprocessableError(err, ErrNotVerified.Error())
		}
		return nil, err
	}
	if result == nil {
		return nil, apperrors.UnprocessableError(ErrNotVerified, ErrNotVerified.Error())
	}

	if actual, ok := s.networks.NetworkByContract(result.Contract); !ok || actual != t.Network {
		return nil, apperrors.BadRequestError(
			fmt.Errorf("contract %s does not belong to %s", result.Contract, t.Network), "payment made on the wrong network")
	}

	// Cached results are not re-matched by the verifier
	if result.To != t.DepositAddress || !policy.WithinTolerance(result.Amount, t.UniqueAmount, s.tolerance) {
		return nil, apperrors.UnprocessableError(
			fmt.Errorf("%w: paid %s to %s, expected %s to %s", ErrPaymentMismatch,
				result.Amount, result.To, t.UniqueAmount, t.DepositAddress),
			ErrPaymentMismatch.Error())
	}

	quote := s.fees.Quote(result.Amount, s.exchangeRates[t.LocalCurrency])
	verifiedAt := result.ConfirmedAt

	t.TxHash = result.TxID
	t.FromAddress = result.From
	t.ContractAddress = result.Contract
	t.VerifiedAmount = result.Amount
	t.Commission = quote.Commission
	t.NetAmount = quote.NetAmount
	t.ExchangeRate = quote.ExchangeRate
	t.LocalAmount = quote.LocalAmount
	t.RoundedLocalAmount = quote.RoundedLocalAmount
	t.VerifiedAt = &verifiedAt
	t.Status = transfer.StatusPendingReview
	t.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTransfer(ctx, t); err != nil {
		if errors.Is(err, transfer.ErrDuplicateTx) {
			return nil, apperrors.ConflictError(err, transfer.ErrDuplicateTx.Error())
		}
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	metrics.TransfersTotal.WithLabelValues(t.Network.String(), string(t.Status)).Inc()
	metrics.TransferAmount.WithLabelValues(t.Network.String()).Observe(result.Amount.InexactFloat64())
	s.notify(ctx, notify.KindPaymentVerified, t)
	return t, nil
}

// CancelTransfer cancels a transfer that has not been paid yet
func (s *transferService) CancelTransfer(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	return s.transition(ctx, id, transfer.StatusAwaitingPayment, transfer.StatusCancelled, notify.KindCancelled, nil)
}

// CompleteTransfer marks a reviewed transfer as paid out
func (s *transferService) CompleteTransfer(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.CompleteRequest,
) (*transfer.Transfer, error) {
	if req == nil || strings.TrimSpace(req.ReceiptRef) == "" {
		return nil, apperrors.BadRequestError(nil, "receipt_ref is required")
	}
	return s.transition(ctx, id, transfer.StatusPendingReview, transfer.StatusCompleted, notify.KindCompleted,
		func(t *transfer.Transfer, now time.Time) {
			t.ReceiptRef = strings.TrimSpace(req.ReceiptRef)
			t.CompletedAt = &now
		})
}

// RejectTransfer refuses a reviewed transfer
func (s *transferService) RejectTransfer(
	ctx context.Context,
	id uuid.UUID,
	req *transfer.RejectRequest,
) (*transfer.Transfer, error) {
	if req == nil || strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.BadRequestError(nil, "reason is required")
	}
	return s.transition(ctx, id, transfer.StatusPendingReview, transfer.StatusRejected, notify.KindRejected,
		func(t *transfer.Transfer, _ time.Time) {
			t.RejectionReason = strings.TrimSpace(req.Reason)
		})
}

// ListTransfers returns one page of transfers, newest first
func (s *transferService) ListTransfers(ctx context.Context, filter transfer.ListFilter) (*transfer.Page, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.BadRequestError(nil, "invalid status")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}

	transfers, total, err := s.store.ListTransfers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	return &transfer.Page{
		Transfers:  transfers,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: (total + filter.PerPage - 1) / filter.PerPage,
	}, nil
}

func (s *transferService) transition(
	ctx context.Context,
	id uuid.UUID,
	from, to transfer.Status,
	kind notify.Kind,
	apply func(t *transfer.Transfer, now time.Time),
) (*transfer.Transfer, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != from {
		return nil, apperrors.ConflictError(ErrInvalidTransition, fmt.Sprintf("transfer is %s", t.Status))
	}

	now := time.Now().UTC()
	if apply != nil {
		apply(t, now)
	}
	t.Status = to
	t.UpdatedAt = now

	if err := s.store.UpdateTransfer(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	metrics.TransfersTotal.WithLabelValues(t.Network.String(), string(to)).Inc()
	s.notify(ctx, kind, t)
	return t, nil
}

func (s *transferService) load(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	t, err := s.store.GetTransfer(ctx, id)
	if err != nil {
		if errors.Is(err, transfer.ErrNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "transfer not found")
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return t, nil
}

// notify delivers an operator event; delivery failures are logged only
func (s *transferService) notify(ctx context.Context, kind notify.Kind, t *transfer.Transfer) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notify.NewEvent(kind, t)); err != nil {
		s.logger.Warn("failed to notify operators",
			zap.String("kind", string(kind)),
			zap.String("transfer_id", t.ID.String()),
			zap.Error(err),
		)
	}
}
