package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = time.Minute

type entry struct {
	v   []byte
	exp time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && now.After(e.exp)
}

// TTLCache is an in-process BytesCache. A background sweep drops expired
// entries so keys that are never read again do not accumulate.
type TTLCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time

	cleanupInterval time.Duration
	stop            chan struct{}
	closeOnce       sync.Once
}

// TTLOption configures a TTLCache.
type TTLOption func(*TTLCache)

// WithCleanupInterval sets the sweep period; d <= 0 disables the sweeper.
func WithCleanupInterval(d time.Duration) TTLOption {
	return func(c *TTLCache) { c.cleanupInterval = d }
}

func NewTTLCache(opts ...TTLOption) *TTLCache {
	c := &TTLCache{
		m:               make(map[string]entry),
		now:             time.Now,
		cleanupInterval: DefaultCleanupInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cleanupInterval > 0 {
		go c.cleanupExpired(c.cleanupInterval)
	}
	return c
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.v, true, nil
}

// SetBytes stores a copy of value; ttl <= 0 never expires.
func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	b := make([]byte, len(value))
	copy(b, value)
	c.mu.Lock()
	c.m[key] = entry{v: b, exp: exp}
	c.mu.Unlock()
	return nil
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *TTLCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, e := range c.m {
		if e.expired(now) {
			delete(c.m, key)
			n++
		}
	}
	return n
}

func (c *TTLCache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-c.stop:
			return
		}
	}
}

// Close stops the sweeper. The cache stays usable afterwards.
func (c *TTLCache) Close() error {
	c.closeOnce.Do(func() { close(c.stop) })
	return nil
}

// Len returns the number of stored entries, expired ones not yet swept included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

var (
	_ BytesCache = (*TTLCache)(nil)
	_ BytesCache = (*RedisCache)(nil)
	_ BytesCache = Nop{}
)
