package ratelimit

import (
	"context"
	"fmt"
	"time"

	"QuoteDesk/pkg/cache"
)

// FixedWindow counts requests per key in epoch-aligned windows stored in a
// shared Counter, so every instance sees the same budget.
type FixedWindow struct {
	store  cache.Counter
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewFixedWindow(store cache.Counter, requests int, window time.Duration) *FixedWindow {
	if requests <= 0 {
		requests = 1
	}
	if window < time.Second {
		window = time.Second
	}
	return &FixedWindow{store: store, limit: requests, window: window, now: time.Now}
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	resetAt := time.Unix(0, (slot+1)*int64(l.window))
	counterKey := cache.GenerateKeyWithParams("ratelimit", key, slot)

	n, err := l.store.Increment(ctx, counterKey)
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit increment: %w", err)
	}
	if n == 1 {
		if _, err := l.store.Expire(ctx, counterKey, l.window+time.Second); err != nil {
			return Decision{}, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	remaining := l.limit - int(n)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   n <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

var _ Limiter = (*FixedWindow)(nil)
