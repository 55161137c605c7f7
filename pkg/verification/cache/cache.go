// Package cache keeps verified results in memory for a bounded time.
package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

// DefaultTTL is how long a verified result is served from memory
const DefaultTTL = time.Hour

type entry struct {
	result     verification.Result
	insertedAt time.Time
}

// Cache maps (network, tx id) to a verification result. Expiry is lazy: an
// entry at or past its TTL is removed by the lookup that finds it.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   clock.Clock
	entries map[string]entry
}

// Option configures a Cache
type Option func(*Cache)

// WithClock sets the clock used for insertion times and expiry
func WithClock(c clock.Clock) Option {
	return func(cache *Cache) {
		cache.clock = c
	}
}

// New creates a cache with the given TTL. A non-positive ttl uses DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		ttl:     ttl,
		clock:   clock.New(),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds the cache key for a network and a canonical tx id
func Key(n network.Network, txID string) string {
	return n.String() + ":" + txID
}

// Get returns a copy of the cached result or false when absent or expired
func (c *Cache) Get(n network.Network, txID string) (*verification.Result, bool) {
	key := Key(n, txID)
	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.Sub(e.insertedAt) >= c.ttl {
		c.mu.Lock()
		// re-check, a concurrent Put may have refreshed the entry
		if cur, ok := c.entries[key]; ok && now.Sub(cur.insertedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	result := e.result
	return &result, true
}

// Put stores a copy of result
func (c *Cache) Put(n network.Network, txID string, result *verification.Result) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(n, txID)] = entry{
		result:     *result,
		insertedAt: c.clock.Now(),
	}
}

// Len returns the number of stored entries, including expired ones not yet purged
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
