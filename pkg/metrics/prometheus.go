package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	ruleFaults    *prometheus.CounterVec
	latestValue   *prometheus.GaugeVec
	positiveRatio prometheus.Gauge
	latency       *prometheus.HistogramVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econ_series_fetches_total",
				Help: "Total number of indicator series fetches by result",
			},
			[]string{"code", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econ_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		ruleFaults: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "econ_rule_faults_total",
				Help: "Faults raised while evaluating analysis rules",
			},
			[]string{"component", "rule"},
		),
		latestValue: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "econ_indicator_latest_value",
				Help: "Latest observed value of an indicator",
			},
			[]string{"code"},
		),
		positiveRatio: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "econ_sentiment_positive_ratio",
				Help: "Share of positive votes in the last sentiment read",
			},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "econ_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one series fetch; result is ok, empty or error.
func (r *Recorder) RecordFetch(code, result string) {
	r.fetchesTotal.WithLabelValues(code, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordRuleFault(component, rule string) {
	r.ruleFaults.WithLabelValues(component, rule).Inc()
}

// RecordLatestValue records the last observation of an indicator.
func (r *Recorder) RecordLatestValue(code string, value float64) {
	r.latestValue.WithLabelValues(code).Set(value)
}

func (r *Recorder) RecordPositiveRatio(ratio float64) {
	r.positiveRatio.Set(ratio)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
