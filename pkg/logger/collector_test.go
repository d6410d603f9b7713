package logger

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
	err     error
}

func (p *recordingPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return p.err
}

func (p *recordingPublisher) snapshot() [][]AggregatedLogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]AggregatedLogEntry, len(p.batches))
	copy(out, p.batches)
	return out
}

func TestCollector_DeduplicatesUntilClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "ops",
		Publisher:      pub,
	})

	for i := 0; i < 3; i++ {
		c.AddLog("error", "upstream failed", map[string]interface{}{"call": "latest"}, "x.go:1")
	}
	c.AddLog("warn", "history degraded", nil, "y.go:2")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 2)
	assert.Equal(t, []string{"ops"}, pub.topics)

	counts := map[string]int{}
	for _, e := range batches[0] {
		counts[e.Message] = e.Count
	}
	assert.Equal(t, 3, counts["upstream failed"])
	assert.Equal(t, 1, counts["history degraded"])
}

func TestCollector_FlushesOnThreshold(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "ops",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "a", nil, "a.go:1")
	c.AddLog("error", "b", nil, "b.go:1")

	require.Eventually(t, func() bool { return len(pub.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, c.Pending())
}

func TestCollector_PublishErrorDoesNotBlock(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 1, Publisher: pub})

	c.AddLog("error", "boom", nil, "z.go:1")
	c.Close()

	assert.Len(t, pub.snapshot(), 1)
}

func TestLogger_WarnAndErrorReachCollector(t *testing.T) {
	var buf bytes.Buffer
	pub := &recordingPublisher{}
	l := NewWithWriter(&buf, zerolog.DebugLevel)
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100, Topic: "ops", Publisher: pub})

	l.Info("ignored by collector")
	l.Warn("history degraded", String("symbol", "AAPL"))
	l.Error("upstream failed", Error(errors.New("boom")))
	l.RemoveCollector()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 2)
	assert.Contains(t, buf.String(), `"symbol":"AAPL"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLogger_FieldEncoding(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.DebugLevel)

	l.Debug("quote summary built",
		Float64("price", 152.5),
		Int("points", 3),
		Duration("took", 1500*time.Millisecond),
	)
	assert.Contains(t, buf.String(), `"price":152.5`)
	assert.Contains(t, buf.String(), `"points":3`)
	assert.Contains(t, buf.String(), `"took":1500`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	require.Error(t, err)

	l, err := New(&Config{Level: "", Output: "stderr"})
	require.NoError(t, err)
	require.NotNil(t, l)
}
