package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuoteDesk/pkg/config"
)

func TestInitializeApp_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Log.Output = "stderr"

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	cleanup()
}

func TestProvideRateLimiter(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	l, err := ProvideLogger(cfg)
	require.NoError(t, err)

	cfg.RateLimit.Enabled = false
	lim, cleanup, err := ProvideRateLimiter(cfg, l)
	require.NoError(t, err)
	assert.Nil(t, lim)
	cleanup()

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Backend = "memory"
	lim, cleanup, err = ProvideRateLimiter(cfg, l)
	require.NoError(t, err)
	assert.NotNil(t, lim)
	cleanup()
}

func TestProvideEventProducer_Disabled(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	l, err := ProvideLogger(cfg)
	require.NoError(t, err)

	p, cleanup, err := ProvideEventProducer(cfg, ProvideRegistry(), l)
	require.NoError(t, err)
	assert.Nil(t, p)
	cleanup()
}
