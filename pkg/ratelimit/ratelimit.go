// Package ratelimit spaces outbound provider calls per network.
package ratelimit

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter enforces a minimum interval between calls to the same network.
// Every Wait reserves the next slot, so the watermark advances whether or not
// the call that follows succeeds.
type Limiter struct {
	clock    clock.Clock
	sleep    SleepFunc
	limiters map[network.Network]*rate.Limiter
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock sets the clock used to compute delays
func WithClock(c clock.Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

// WithSleep replaces the function used to wait out a delay
func WithSleep(fn SleepFunc) Option {
	return func(l *Limiter) {
		l.sleep = fn
	}
}

// New builds a limiter with one bucket per network in intervals
func New(intervals map[network.Network]time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		clock:    clock.New(),
		limiters: make(map[network.Network]*rate.Limiter, len(intervals)),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sleep == nil {
		l.sleep = clockSleep(l.clock)
	}

	for n, interval := range intervals {
		limit := rate.Inf
		if interval > 0 {
			limit = rate.Every(interval)
		}
		l.limiters[n] = rate.NewLimiter(limit, 1)
	}
	return l
}

// FromRegistry builds a limiter using each network's configured minimum interval
func FromRegistry(reg *network.Registry, opts ...Option) *Limiter {
	intervals := make(map[network.Network]time.Duration)
	for _, n := range reg.Networks() {
		spec, _ := reg.Spec(n)
		intervals[n] = spec.MinInterval
	}
	return New(intervals, opts...)
}

// Wait blocks until a call to n is allowed. Networks without a configured
// interval are not limited.
func (l *Limiter) Wait(ctx context.Context, n network.Network) error {
	lim, ok := l.limiters[n]
	if !ok {
		return nil
	}

	now := l.clock.Now()
	r := lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	if err := l.sleep(ctx, delay); err != nil {
		r.CancelAt(l.clock.Now())
		return err
	}
	return nil
}

func clockSleep(c clock.Clock) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		t := c.Timer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}
