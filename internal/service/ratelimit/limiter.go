package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is the minimum time a key must stay unused before its bucket
// is dropped.
const DefaultIdleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key, all sharing the same rate and burst.
// Buckets unused for longer than the idle TTL are evicted on a later call.
type Limiter struct {
	mu        sync.Mutex
	m         map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// New builds a limiter allowing perSecond events per key with the given burst.
// A non-positive rate disables limiting.
func New(perSecond float64, burst int) *Limiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	l := &Limiter{
		m:       make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
	}
	// An evicted bucket restarts full, so never drop one before it could
	// have refilled on its own.
	if limit != rate.Inf {
		if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > l.idleTTL {
			l.idleTTL = refill
		}
	}
	l.lastSweep = l.now()
	return l
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.evictIdle(now)
	}
	b, ok := l.m[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.m[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// evictIdle must be called with mu held.
func (l *Limiter) evictIdle(now time.Time) {
	for key, b := range l.m {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.m, key)
		}
	}
	l.lastSweep = now
}

// Allow returns true if one token can be consumed for key right now.
func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Wait blocks until a token for key is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
