package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	require.Error(t, err)
}

func TestWriterEmitsTypedFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "debug")

	l.Warn("rule fault",
		String("rule", "policy_rate"),
		Int("observations", 3),
		Float64("ratio", 0.5),
		Bool("skipped", true),
		Error(errors.New("boom")),
	)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "warn", got["level"])
	assert.Equal(t, "rule fault", got["message"])
	assert.Equal(t, "policy_rate", got["rule"])
	assert.Equal(t, float64(3), got["observations"])
	assert.Equal(t, 0.5, got["ratio"])
	assert.Equal(t, true, got["skipped"])
	assert.Equal(t, "boom", got["error"])
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")
	l.Info("hidden")
	assert.Zero(t, buf.Len())
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info").With(String("component", "fred"))
	l.Info("fetched")

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "fred", got["component"])
}
