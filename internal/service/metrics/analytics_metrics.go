package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// API endpoint metrics. Register must run before the handlers serve.
var (
	once sync.Once

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "econ",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of analysis endpoints; a cold report fans out to every series",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "econ",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by analysis endpoint",
		},
		[]string{"endpoint"},
	)

	apiCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "econ",
			Subsystem: "api",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiLatency, apiErrors, apiCache)
	})
}

// ObserveLatency records the time spent since start.
func ObserveLatency(endpoint string, start time.Time) {
	apiLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func IncError(endpoint string) {
	apiErrors.WithLabelValues(endpoint).Inc()
}

func IncCacheLookup(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	apiCache.WithLabelValues(endpoint, result).Inc()
}
