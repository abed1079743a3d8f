package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &memWriter{}
	p := NewProducerWithWriter(w, "snappy")

	err := p.Publish(context.Background(), "econ.analysis", []byte("2025-03-14"), map[string]string{"sentiment": "positive"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "econ.analysis", w.msgs[0].Topic)
	assert.Equal(t, []byte("2025-03-14"), w.msgs[0].Key)
	assert.JSONEq(t, `{"sentiment":"positive"}`, string(w.msgs[0].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := NewProducerWithWriter(&memWriter{err: boom}, "none")

	err := p.Publish(context.Background(), "econ.analysis", nil, "raw")
	assert.ErrorIs(t, err, boom)
}

func TestNewProducerValidates(t *testing.T) {
	_, err := NewProducer(ProducerConfig{})
	assert.Error(t, err)

	_, err = NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}, RequiredAcks: 2})
	assert.Error(t, err)
}

func TestProducerConfigDefaults(t *testing.T) {
	cfg := ProducerConfig{Brokers: []string{"localhost:9092"}, Compression: "lz4"}.withDefaults()
	assert.Equal(t, "lz4", cfg.Compression)
	assert.Equal(t, DefaultProducerConfig().MaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultProducerConfig().WriteTimeout, cfg.WriteTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Gzip, parseCompression("gzip"))
	assert.Equal(t, kafka.Snappy, parseCompression(""))
	assert.Equal(t, kafka.Compression(0), parseCompression("none"))
}
