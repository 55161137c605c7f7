// Package retry runs verification attempts on a fixed backoff schedule.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

// ErrExhausted is returned when every attempt failed
var ErrExhausted = errors.New("verification attempts exhausted")

// State is a step of the retry loop
type State int

const (
	StateAttempting State = iota
	StateWaiting
	StateSucceeded
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateWaiting:
		return "waiting"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Attempt performs one verification attempt. attempt starts at 1.
type Attempt func(ctx context.Context, attempt int) (*verification.Result, error)

// Transition describes a state change, passed to an Observer
type Transition struct {
	State   State
	Attempt int
	Delay   time.Duration // set for StateWaiting
	Err     error         // last attempt error for StateWaiting and StateExhausted
}

// Observer receives every state transition in order
type Observer func(Transition)

// Orchestrator bounds verification attempts and sleeps between them
type Orchestrator struct {
	maxAttempts     int
	delays          []time.Duration
	retryRejections bool
	newTimer        func() backoff.Timer
	observer        Observer
	logger          *zap.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithTimer sets the timer factory used for the waits between attempts
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(o *Orchestrator) {
		o.newTimer = newTimer
	}
}

// WithObserver registers a callback for state transitions
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

// New creates an Orchestrator from the retry configuration
func New(cfg config.RetryConfig, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		maxAttempts:     cfg.MaxAttempts,
		delays:          cfg.Delays,
		retryRejections: cfg.RetryRejections,
		logger:          logger,
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = 1
	}
	if len(o.delays) == 0 {
		o.delays = config.DefaultRetryDelays
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// MaxAttempts returns the attempt bound
func (o *Orchestrator) MaxAttempts() int {
	return o.maxAttempts
}

// Run calls attempt until it succeeds, the attempt bound is reached, or ctx is
// done. On exhaustion the returned error wraps both ErrExhausted and the last
// attempt error. A definitive rejection ends the loop early unless the
// orchestrator was configured to retry rejections.
func (o *Orchestrator) Run(ctx context.Context, n network.Network, txID string, attempt Attempt) (*verification.Result, error) {
	var (
		count   int
		lastErr error
	)

	op := func() (*verification.Result, error) {
		count++
		o.transition(n, txID, Transition{State: StateAttempting, Attempt: count})

		result, err := attempt(ctx, count)
		if err == nil {
			metrics.VerificationAttempts.WithLabelValues(n.String(), "success").Inc()
			return result, nil
		}
		lastErr = err
		metrics.VerificationAttempts.WithLabelValues(n.String(), attemptLabel(err)).Inc()

		var rej *verification.Rejection
		if !o.retryRejections && errors.As(err, &rej) && rej.Definitive() {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, next time.Duration) {
		o.transition(n, txID, Transition{State: StateWaiting, Attempt: count, Delay: next, Err: err})
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newSchedule(o.delays), uint64(o.maxAttempts-1)), ctx)

	var timer backoff.Timer
	if o.newTimer != nil {
		timer = o.newTimer()
	}

	result, err := backoff.RetryNotifyWithTimerAndData(op, b, notify, timer)
	if err == nil {
		o.transition(n, txID, Transition{State: StateSucceeded, Attempt: count})
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	o.transition(n, txID, Transition{State: StateExhausted, Attempt: count, Err: lastErr})
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, count, lastErr)
}

func (o *Orchestrator) transition(n network.Network, txID string, t Transition) {
	fields := []zap.Field{
		zap.String("network", n.String()),
		zap.String("tx_id", txID),
		zap.String("state", t.State.String()),
		zap.Int("attempt", t.Attempt),
		zap.Int("max_attempts", o.maxAttempts),
	}
	switch t.State {
	case StateWaiting:
		o.logger.Info("verification attempt failed, waiting",
			append(fields, zap.Duration("delay", t.Delay), zap.Error(t.Err))...)
	case StateExhausted:
		o.logger.Warn("verification attempts exhausted", append(fields, zap.Error(t.Err))...)
	default:
		o.logger.Debug("verification state", fields...)
	}

	if o.observer != nil {
		o.observer(t)
	}
}

func attemptLabel(err error) string {
	if errors.Is(err, verification.ErrRejected) {
		return "rejected"
	}
	return "error"
}

// schedule is a BackOff over a fixed list of delays; the last delay repeats
type schedule struct {
	delays []time.Duration
	next   int
}

func newSchedule(delays []time.Duration) *schedule {
	return &schedule{delays: delays}
}

func (s *schedule) NextBackOff() time.Duration {
	d := s.delays[len(s.delays)-1]
	if s.next < len(s.delays) {
		d = s.delays[s.next]
	}
	s.next++
	return d
}

func (s *schedule) Reset() {
	s.next = 0
}
