package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "rl", GenerateKeyWithParams("rl"))
	assert.Equal(t, "rl:10.0.0.1:42", GenerateKeyWithParams("rl", "10.0.0.1", 42))
}

// Runs against a real server only when REDIS_ADDR is set.
func TestRedisCache_Counter(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	c, err := NewRedisCache(WithRedisAddr(addr), WithRedisPrefix("quotedesk-test"))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := GenerateKeyWithParams("counter", time.Now().UnixNano())

	n, err := c.Increment(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Increment(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := c.Expire(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(WithRedisAddr("127.0.0.1:1"))
	require.Error(t, err)
}
