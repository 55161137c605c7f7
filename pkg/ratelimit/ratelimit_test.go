package ratelimit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

type sleepRecorder struct {
	mu      sync.Mutex
	clock   *clock.Mock
	advance bool
	sleeps  []time.Duration
	err     error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
	if s.advance {
		s.clock.Add(d)
	}
	return s.err
}

func newTestLimiter(rec *sleepRecorder) *Limiter {
	return New(map[network.Network]time.Duration{
		network.BEP20: 200 * time.Millisecond,
		network.TRC20: 200 * time.Millisecond,
	}, WithClock(rec.clock), WithSleep(rec.sleep))
}

func newMockClock() *clock.Mock {
	c := clock.NewMock()
	c.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return c
}

func TestLimiter_SpacesConsecutiveCalls(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock(), advance: true}
	l := newTestLimiter(rec)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(ctx, network.BEP20))
	}
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 200 * time.Millisecond}, rec.sleeps)
}

func TestLimiter_NetworksAreIndependent(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock(), advance: true}
	l := newTestLimiter(rec)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, network.BEP20))
	require.NoError(t, l.Wait(ctx, network.TRC20))
	require.NoError(t, l.Wait(ctx, network.ERC20)) // not configured
	assert.Empty(t, rec.sleeps)
}

func TestLimiter_NoDelayAfterIdle(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock(), advance: true}
	l := newTestLimiter(rec)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, network.BEP20))
	rec.clock.Add(time.Second)
	require.NoError(t, l.Wait(ctx, network.BEP20))
	assert.Empty(t, rec.sleeps)
}

func TestLimiter_PartialInterval(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock(), advance: true}
	l := newTestLimiter(rec)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, network.BEP20))
	rec.clock.Add(150 * time.Millisecond)
	require.NoError(t, l.Wait(ctx, network.BEP20))
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, rec.sleeps)
}

func TestLimiter_ConcurrentCallersQueue(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock()}
	l := newTestLimiter(rec)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Wait(ctx, network.BEP20))
		}()
	}
	wg.Wait()

	sort.Slice(rec.sleeps, func(i, j int) bool { return rec.sleeps[i] < rec.sleeps[j] })
	assert.Equal(t, []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		600 * time.Millisecond,
		800 * time.Millisecond,
	}, rec.sleeps)
}

func TestLimiter_SleepError(t *testing.T) {
	rec := &sleepRecorder{clock: newMockClock(), err: context.Canceled}
	l := newTestLimiter(rec)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, network.BEP20))
	err := l.Wait(ctx, network.BEP20)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFromRegistry(t *testing.T) {
	reg, err := network.NewRegistry(nil)
	require.NoError(t, err)

	rec := &sleepRecorder{clock: newMockClock(), advance: true}
	l := FromRegistry(reg, WithClock(rec.clock), WithSleep(rec.sleep))
	ctx := context.Background()

	for _, n := range reg.Networks() {
		require.NoError(t, l.Wait(ctx, n))
		require.NoError(t, l.Wait(ctx, n))
	}
	assert.Len(t, rec.sleeps, len(reg.Networks()))
}
