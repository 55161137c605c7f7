package chain

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

// Limiter spaces calls to a network
type Limiter interface {
	Wait(ctx context.Context, n network.Network) error
}

// Caller runs provider calls for one network behind the shared rate limiter,
// with a per-call timeout and request metrics.
type Caller struct {
	network network.Network
	limiter Limiter
	timeout time.Duration
	logger  *zap.Logger
}

// NewCaller creates a Caller. A nil limiter disables spacing.
func NewCaller(n network.Network, limiter Limiter, timeout time.Duration, logger *zap.Logger) *Caller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Caller{
		network: n,
		limiter: limiter,
		timeout: timeout,
		logger:  logger,
	}
}

// Do waits for a rate limit slot then invokes fn with a call scoped context.
// Transport level failures that fn did not classify are wrapped as HardError.
func (c *Caller) Do(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.network); err != nil {
			return err
		}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(callCtx)
	metrics.RPCDuration.WithLabelValues(c.network.String(), method).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.RPCRequests.WithLabelValues(c.network.String(), method, "ok").Inc()
		return nil
	case errors.Is(err, ErrNotFound):
		metrics.RPCRequests.WithLabelValues(c.network.String(), method, "not_found").Inc()
		return err
	}

	metrics.RPCRequests.WithLabelValues(c.network.String(), method, "error").Inc()
	c.logger.Debug("provider call failed",
		zap.String("network", c.network.String()),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	var hard *HardError
	if !errors.As(err, &hard) && IsTransient(err) {
		return NewHardError(method, 0, err)
	}
	return err
}
