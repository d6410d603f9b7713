package ratelimit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	clk := &manualClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	l := NewTokenBucket(60, time.Minute, 3)
	l.now = clk.Now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 2-i, d.Remaining)
		assert.Equal(t, 60, d.Limit)
	}

	d, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, d.Allowed)
	assert.True(t, d.ResetAt.After(clk.t))

	// other clients are unaffected
	d, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, d.Allowed)

	clk.Advance(time.Second)
	d, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, d.Allowed)
}

func TestTokenBucket_PrunesIdleKeys(t *testing.T) {
	clk := &manualClock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	l := NewTokenBucket(10, time.Second, 10)
	l.now = clk.Now
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	_, _ = l.Allow(ctx, "b")
	assert.Equal(t, 2, l.Len())

	clk.Advance(2 * time.Minute)
	_, _ = l.Allow(ctx, "c")
	assert.Equal(t, 1, l.Len())
}

type memCounter struct {
	vals    map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemCounter() *memCounter {
	return &memCounter{vals: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memCounter) Increment(_ context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.vals[key]++
	return m.vals[key], nil
}

func (m *memCounter) Expire(_ context.Context, key string, d time.Duration) (bool, error) {
	m.expires[key] = d
	return true, nil
}

func TestFixedWindow(t *testing.T) {
	clk := &manualClock{t: time.Date(2026, 10, 17, 12, 0, 10, 0, time.UTC)}
	store := newMemCounter()
	l := NewFixedWindow(store, 2, time.Minute)
	l.now = clk.Now
	ctx := context.Background()

	d, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, time.Date(2026, 10, 17, 12, 1, 0, 0, time.UTC), d.ResetAt.UTC())

	d, _ = l.Allow(ctx, "ip")
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, _ = l.Allow(ctx, "ip")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	require.Len(t, store.expires, 1)
	for k, ttl := range store.expires {
		assert.True(t, strings.HasPrefix(k, "ratelimit:ip:"))
		assert.Equal(t, time.Minute+time.Second, ttl)
	}

	clk.Advance(time.Minute)
	d, _ = l.Allow(ctx, "ip")
	assert.True(t, d.Allowed)
}

func TestFixedWindow_StoreError(t *testing.T) {
	store := newMemCounter()
	store.err = errors.New("connection refused")
	l := NewFixedWindow(store, 1, time.Minute)

	_, err := l.Allow(context.Background(), "ip")
	require.Error(t, err)
}
