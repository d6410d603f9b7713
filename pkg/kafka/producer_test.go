package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishMessageEncodesJSON(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := &fakeWriter{}
	p := newProducer(w, &ProducerConfig{Compression: "gzip", Registerer: reg})

	payload := []map[string]interface{}{{"message": "history degraded", "count": 2}}
	require.NoError(t, p.PublishMessage(context.Background(), "ops", payload))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ops", w.msgs[0].Topic)
	assert.Nil(t, w.msgs[0].Key)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "history degraded", got[0]["message"])

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.msgs.WithLabelValues("ops", "gzip", "ok")))
}

func TestProducer_PublishBatchPassesBytesThrough(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, &ProducerConfig{})

	err := p.PublishBatch(context.Background(), "ops", []Message{
		{Key: []byte("a"), Value: []byte("raw")},
		{Value: "text"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "raw", string(w.msgs[0].Value))
	assert.Equal(t, "text", string(w.msgs[1].Value))

	require.NoError(t, p.PublishBatch(context.Background(), "ops", nil))
	assert.Len(t, w.msgs, 2)
}

func TestProducer_WriteErrorCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newProducer(w, &ProducerConfig{Compression: "gzip", Registerer: reg})

	err := p.Publish(context.Background(), "ops", nil, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.errs.WithLabelValues("ops")))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	require.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("lz4"))
	require.NoError(t, err)
	assert.Equal(t, "lz4", p.comp)
	require.NoError(t, p.Close())
}
