package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether key may make another request now.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type bucket struct {
	tokens float64
	last   time.Time
}

// TokenBucket is an in-process per-key token bucket. Buckets refill at
// requests/window and hold at most burst tokens.
type TokenBucket struct {
	mu         sync.Mutex
	m          map[string]*bucket
	capacity   float64
	refillRate float64 // tokens per second
	limit      int
	now        func() time.Time
	lastPrune  time.Time
}

// NewTokenBucket allows requests per window with bursts up to burst.
// burst <= 0 means burst == requests.
func NewTokenBucket(requests int, window time.Duration, burst int) *TokenBucket {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = requests
	}
	return &TokenBucket{
		m:          make(map[string]*bucket),
		capacity:   float64(burst),
		refillRate: float64(requests) / window.Seconds(),
		limit:      requests,
		now:        time.Now,
	}
}

// Allow consumes one token for key if available.
func (l *TokenBucket) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.m[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.refillRate)
		b.last = now
	}

	d := Decision{Limit: l.limit}
	if b.tokens >= 1 {
		b.tokens--
		d.Allowed = true
	}
	d.Remaining = int(math.Floor(b.tokens))
	d.ResetAt = now.Add(l.untilFull(b.tokens))
	return d, nil
}

func (l *TokenBucket) untilFull(tokens float64) time.Duration {
	missing := l.capacity - tokens
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing / l.refillRate * float64(time.Second))
}

// pruneLocked drops buckets that have refilled completely. Runs at most once a minute.
func (l *TokenBucket) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < time.Minute {
		return
	}
	l.lastPrune = now
	for k, b := range l.m {
		if b.tokens+now.Sub(b.last).Seconds()*l.refillRate >= l.capacity {
			delete(l.m, k)
		}
	}
}

// Len reports the number of tracked keys.
func (l *TokenBucket) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

var _ Limiter = (*TokenBucket)(nil)
