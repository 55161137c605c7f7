package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	apperrors "github.com/chainsafe/usdt-payout-verifier/pkg/app/errors"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/cache"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/policy"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification/retry"
)

var (
	ErrMissingFields   = errors.New("network, tx_id and expected_address are required")
	ErrInvalidAmount   = errors.New("expected amount must be positive")
	ErrInvalidTxID     = errors.New("invalid transaction id")
	ErrNoAdapter       = errors.New("no adapter configured for network")
	ErrInvalidExpected = errors.New("invalid expected address")
)

// Service defines the interface for on-chain payment verification
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	// VerifyTransactionByHash returns the verified transfer, or nil when the
	// transaction could not be verified within the retry bound. Only invalid
	// input and context cancellation produce an error.
	VerifyTransactionByHash(ctx context.Context, req *verification.Request) (*verification.Result, error)
}

type verificationService struct {
	registry     *network.Registry
	adapters     map[network.Network]chain.Adapter
	cache        *cache.Cache
	policy       *policy.Policy
	orchestrator *retry.Orchestrator
	logger       *zap.Logger
}

// NewService creates a new verification service
func NewService(
	registry *network.Registry,
	adapters map[network.Network]chain.Adapter,
	resultCache *cache.Cache,
	matcher *policy.Policy,
	orchestrator *retry.Orchestrator,
	logger *zap.Logger,
) Service {
	return &verificationService{
		registry:     registry,
		adapters:     adapters,
		cache:        resultCache,
		policy:       matcher,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// VerifyTransactionByHash verifies that req.TxID pays req.ExpectedAmount of USDT
// to req.ExpectedAddress on req.Network.
//
// The flow:
//  1. Validates and normalizes the request without touching the network
//  2. Returns a cached result for the transaction as-is
//  3. Runs the retry orchestrator over fetch, decode and policy match
//  4. Caches and returns a successful match
//  5. On exhaustion, returns a cached success recorded by a concurrent or
//     earlier call if it still matches, otherwise nil
func (s *verificationService) VerifyTransactionByHash(
	ctx context.Context,
	req *verification.Request,
) (*verification.Result, error) {
	start := time.Now()

	spec, adapter, normalized, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	n := spec.Network
	defer func() {
		metrics.VerificationDuration.WithLabelValues(n.String()).Observe(time.Since(start).Seconds())
	}()

	if cached, ok := s.cache.Get(n, normalized.TxID); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		metrics.VerificationsTotal.WithLabelValues(n.String(), "cached").Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	var fromCache bool
	result, err := s.orchestrator.Run(ctx, n, normalized.TxID, func(ctx context.Context, _ int) (res *verification.Result, err error) {
		res, fromCache, err = s.attempt(ctx, adapter, spec, normalized)
		return res, err
	})
	if err == nil {
		if fromCache {
			metrics.VerificationsTotal.WithLabelValues(n.String(), "recovered").Inc()
			return result, nil
		}
		s.cache.Put(n, normalized.TxID, result)
		metrics.VerificationsTotal.WithLabelValues(n.String(), "verified").Inc()
		return result.Clone(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if recovered, ok := s.cachedMatch(normalized); ok {
		metrics.VerificationsTotal.WithLabelValues(n.String(), "recovered").Inc()
		return recovered, nil
	}

	outcome := "not_verified"
	if reason, ok := verification.ReasonOf(err); ok {
		outcome = string(reason)
	}
	metrics.VerificationsTotal.WithLabelValues(n.String(), outcome).Inc()
	s.logger.Warn("transaction not verified",
		zap.String("network", n.String()),
		zap.String("tx_id", normalized.TxID),
		zap.String("expected_amount", normalized.ExpectedAmount.String()),
		zap.String("expected_address", normalized.ExpectedAddress),
		zap.String("outcome", outcome),
		zap.Error(err),
	)
	return nil, nil
}

// attempt fetches the transaction and matches it. A transient failure still
// succeeds when a matching result for the transaction is already cached;
// fromCache reports that case.
func (s *verificationService) attempt(
	ctx context.Context,
	adapter chain.Adapter,
	spec network.Spec,
	req verification.Request,
) (result *verification.Result, fromCache bool, err error) {
	raw, err := adapter.FetchTransaction(ctx, req.TxID)
	if err == nil {
		result, err = s.policy.Match(ctx, adapter, spec, req, raw)
		if err == nil {
			return result, false, nil
		}
	}

	if chain.IsTransient(err) {
		if recovered, ok := s.cachedMatch(req); ok {
			s.logger.Info("recovered verification from cache after transient error",
				zap.String("network", spec.Network.String()),
				zap.String("tx_id", req.TxID),
				zap.Error(err),
			)
			return recovered, true, nil
		}
	}
	return nil, false, err
}

// cachedMatch returns a cached result that pays the expected recipient the expected amount
func (s *verificationService) cachedMatch(req verification.Request) (*verification.Result, bool) {
	cached, ok := s.cache.Get(req.Network, req.TxID)
	if !ok {
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("recovery").Inc()
	if cached.To != req.ExpectedAddress || !s.policy.AmountMatches(cached.Amount, req.ExpectedAmount) {
		return nil, false
	}
	return cached, true
}

// validate checks req and returns it with the network tag, address and tx id
// in canonical form
func (s *verificationService) validate(
	req *verification.Request,
) (network.Spec, chain.Adapter, verification.Request, error) {
	var none verification.Request
	if req == nil {
		return network.Spec{}, nil, none, apperrors.BadRequestError(ErrMissingFields, "request is required")
	}
	if strings.TrimSpace(string(req.Network)) == "" ||
		strings.TrimSpace(req.TxID) == "" ||
		strings.TrimSpace(req.ExpectedAddress) == "" {
		return network.Spec{}, nil, none, apperrors.BadRequestError(ErrMissingFields, ErrMissingFields.Error())
	}

	n, err := network.Parse(string(req.Network))
	if err != nil {
		return network.Spec{}, nil, none, apperrors.BadRequestError(err, "unsupported network")
	}
	spec, ok := s.registry.Spec(n)
	if !ok {
		return network.Spec{}, nil, none, apperrors.BadRequestError(
			fmt.Errorf("%w: %s is disabled", network.ErrUnsupportedNetwork, n), "unsupported network")
	}
	adapter, ok := s.adapters[n]
	if !ok {
		return network.Spec{}, nil, none, apperrors.BadRequestError(
			fmt.Errorf("%w: %s", ErrNoAdapter, n), "unsupported network")
	}

	if !req.ExpectedAmount.IsPositive() {
		return network.Spec{}, nil, none, apperrors.BadRequestError(ErrInvalidAmount, ErrInvalidAmount.Error())
	}

	address, err := network.NormalizeAddress(spec.Family, req.ExpectedAddress)
	if err != nil {
		return network.Spec{}, nil, none, apperrors.BadRequestError(
			fmt.Errorf("%w: %w", ErrInvalidExpected, err), ErrInvalidExpected.Error())
	}

	if !network.ValidTxID(spec.Family, req.TxID) {
		return network.Spec{}, nil, none, apperrors.BadRequestError(ErrInvalidTxID, ErrInvalidTxID.Error())
	}

	return spec, adapter, verification.Request{
		Network:         n,
		TxID:            network.NormalizeTxID(spec.Family, req.TxID),
		ExpectedAmount:  req.ExpectedAmount,
		ExpectedAddress: address,
	}, nil
}
