package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	pkgkafka "github.com/yigiitcoskun/us-economic-insights/pkg/kafka"
)

func sampleRun() *models.Run {
	return &models.Run{
		ID: "20250314T083000Z",
		Result: models.AnalysisResult{
			GeneratedAt: time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC),
			Sentiment:   models.SentimentResult{Label: models.SentimentNeutral, Risk: models.RiskMedium},
		},
		Report: "US ECONOMIC DATA ANALYSIS REPORT\n",
	}
}

func TestFileReportSinkWritesNamedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s := NewFileReportSink(dir, func(ts time.Time) string { return "report_" + ts.Format("20060102") + ".txt" })

	run := sampleRun()
	require.NoError(t, s.Save(context.Background(), run))

	b, err := os.ReadFile(filepath.Join(dir, "report_20250314.txt"))
	require.NoError(t, err)
	assert.Equal(t, run.Report, string(b))
	assert.Equal(t, "file", s.Name())
}

func TestFileReportSinkOverwritesSameDay(t *testing.T) {
	dir := t.TempDir()
	s := NewFileReportSink(dir, nil)
	run := sampleRun()
	require.NoError(t, s.Save(context.Background(), run))

	run.Report = "second"
	require.NoError(t, s.Save(context.Background(), run))

	b, err := os.ReadFile(s.Path(run))
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
	assert.Equal(t, filepath.Join(dir, "20250314T083000Z.txt"), s.Path(run))
}

func TestFileReportSinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileReportSink(t.TempDir(), nil).Save(ctx, sampleRun())
	assert.ErrorIs(t, err, context.Canceled)
}

type captureWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherKeysByDate(t *testing.T) {
	w := &captureWriter{}
	p := NewKafkaPublisher(pkgkafka.NewProducerWithWriter(w, "none"), "econ.analysis")

	require.NoError(t, p.Save(context.Background(), sampleRun()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "econ.analysis", w.msgs[0].Topic)
	assert.Equal(t, "2025-03-14", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "20250314T083000Z", got["id"])
	assert.NotContains(t, got, "Report")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
