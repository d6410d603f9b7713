package cache

import (
	"context"
	"time"
)

// Counter is a shared expiring counter store.
type Counter interface {
	// Increment adds one to key and returns the new value. A missing key starts at 0.
	Increment(ctx context.Context, key string) (int64, error)
	// Expire sets a TTL on key. It reports false if the key does not exist.
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}
