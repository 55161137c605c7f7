package retry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

const txID = "0xabc"

// fakeTimer fires immediately and records every requested delay
type fakeTimer struct {
	mu     sync.Mutex
	slept  []time.Duration
	c      chan time.Time
	hold   bool
	cancel context.CancelFunc
}

func (f *fakeTimer) Start(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slept = append(f.slept, d)
	f.c = make(chan time.Time, 1)
	if f.hold {
		if f.cancel != nil {
			f.cancel()
		}
		return
	}
	f.c <- time.Time{}
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.c
}

func (f *fakeTimer) total() time.Duration {
	var sum time.Duration
	for _, d := range f.slept {
		sum += d
	}
	return sum
}

func defaultConfig() config.RetryConfig {
	return config.RetryConfig{MaxAttempts: 4, Delays: config.DefaultRetryDelays}
}

func newOrchestrator(cfg config.RetryConfig, timer *fakeTimer, obs Observer) *Orchestrator {
	opts := []Option{WithTimer(func() backoff.Timer { return timer })}
	if obs != nil {
		opts = append(opts, WithObserver(obs))
	}
	return New(cfg, zap.NewNop(), opts...)
}

func TestRun_SucceedsFirstAttempt(t *testing.T) {
	timer := &fakeTimer{}
	var states []State
	o := newOrchestrator(defaultConfig(), timer, func(tr Transition) { states = append(states, tr.State) })

	want := &verification.Result{TxID: txID, Confirmed: true}
	got, err := o.Run(context.Background(), network.BEP20, txID, func(context.Context, int) (*verification.Result, error) {
		return want, nil
	})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Empty(t, timer.slept)
	assert.Equal(t, []State{StateAttempting, StateSucceeded}, states)
}

func TestRun_ExhaustsAfterMaxAttempts(t *testing.T) {
	timer := &fakeTimer{}
	var states []State
	o := newOrchestrator(defaultConfig(), timer, func(tr Transition) { states = append(states, tr.State) })

	attempts := 0
	got, err := o.Run(context.Background(), network.BEP20, txID, func(_ context.Context, n int) (*verification.Result, error) {
		attempts++
		assert.Equal(t, attempts, n)
		return nil, chain.ErrNotFound
	})

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.True(t, errors.Is(err, chain.ErrNotFound))
	assert.Equal(t, 4, attempts)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}, timer.slept)
	assert.GreaterOrEqual(t, timer.total(), 180*time.Second)
	assert.Equal(t, []State{
		StateAttempting, StateWaiting,
		StateAttempting, StateWaiting,
		StateAttempting, StateWaiting,
		StateAttempting, StateExhausted,
	}, states)
}

func TestRun_LastDelayReused(t *testing.T) {
	timer := &fakeTimer{}
	o := newOrchestrator(config.RetryConfig{MaxAttempts: 6, Delays: config.DefaultRetryDelays}, timer, nil)

	_, err := o.Run(context.Background(), network.ERC20, txID, func(context.Context, int) (*verification.Result, error) {
		return nil, chain.ErrNotFound
	})

	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, []time.Duration{
		30 * time.Second, 60 * time.Second, 90 * time.Second, 90 * time.Second, 90 * time.Second,
	}, timer.slept)
}

func TestRun_TransientThenSuccess(t *testing.T) {
	timer := &fakeTimer{}
	o := newOrchestrator(defaultConfig(), timer, nil)

	want := &verification.Result{TxID: txID, Confirmed: true}
	got, err := o.Run(context.Background(), network.BEP20, txID, func(_ context.Context, n int) (*verification.Result, error) {
		if n == 1 {
			return nil, chain.NewHardError("eth_getTransactionByHash", 0, context.DeadlineExceeded)
		}
		return want, nil
	})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []time.Duration{30 * time.Second}, timer.slept)
}

func TestRun_DefinitiveRejectionShortCircuits(t *testing.T) {
	timer := &fakeTimer{}
	var states []State
	o := newOrchestrator(defaultConfig(), timer, func(tr Transition) { states = append(states, tr.State) })

	attempts := 0
	_, err := o.Run(context.Background(), network.BEP20, txID, func(context.Context, int) (*verification.Result, error) {
		attempts++
		return nil, &verification.Rejection{Reason: verification.ReasonWrongRecipient}
	})

	assert.Equal(t, 1, attempts)
	assert.Empty(t, timer.slept)
	assert.True(t, errors.Is(err, ErrExhausted))
	reason, ok := verification.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, verification.ReasonWrongRecipient, reason)
	assert.Equal(t, []State{StateAttempting, StateExhausted}, states)
}

func TestRun_RetryRejectionsWhenConfigured(t *testing.T) {
	timer := &fakeTimer{}
	cfg := defaultConfig()
	cfg.RetryRejections = true
	o := newOrchestrator(cfg, timer, nil)

	attempts := 0
	_, err := o.Run(context.Background(), network.BEP20, txID, func(context.Context, int) (*verification.Result, error) {
		attempts++
		return nil, &verification.Rejection{Reason: verification.ReasonAmountMismatch}
	})

	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 4, attempts)
	assert.Len(t, timer.slept, 3)
}

func TestRun_UnconfirmedIsRetried(t *testing.T) {
	timer := &fakeTimer{}
	o := newOrchestrator(defaultConfig(), timer, nil)

	want := &verification.Result{TxID: txID, Confirmed: true}
	got, err := o.Run(context.Background(), network.TRC20, txID, func(_ context.Context, n int) (*verification.Result, error) {
		if n < 3 {
			return nil, &verification.Rejection{Reason: verification.ReasonUnconfirmed}
		}
		return want, nil
	})

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, timer.slept)
}

func TestRun_ContextCanceledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timer := &fakeTimer{hold: true, cancel: cancel}
	o := newOrchestrator(defaultConfig(), timer, nil)

	attempts := 0
	_, err := o.Run(ctx, network.BEP20, txID, func(context.Context, int) (*verification.Result, error) {
		attempts++
		return nil, chain.ErrNotFound
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 1, attempts)
}

func TestNew_Defaults(t *testing.T) {
	o := New(config.RetryConfig{}, nil)
	assert.Equal(t, 1, o.MaxAttempts())
	assert.Equal(t, config.DefaultRetryDelays, o.delays)
}

func TestSchedule(t *testing.T) {
	s := newSchedule([]time.Duration{time.Second, 2 * time.Second})
	assert.Equal(t, time.Second, s.NextBackOff())
	assert.Equal(t, 2*time.Second, s.NextBackOff())
	assert.Equal(t, 2*time.Second, s.NextBackOff())
	s.Reset()
	assert.Equal(t, time.Second, s.NextBackOff())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "attempting", StateAttempting.String())
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "unknown", State(99).String())
}
