package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func monthly(code string, vals ...float64) models.Series {
	obs := make([]models.Observation, len(vals))
	for i, v := range vals {
		obs[i] = models.Observation{Date: time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), Value: v}
	}
	return models.Series{Code: code, Observations: obs}
}

type fakeFetcher struct {
	mu      sync.Mutex
	series  map[string]models.Series
	errs    map[string]error
	calls   []string
	windows []domrepo.DateRange
}

func (f *fakeFetcher) FetchSeries(ctx context.Context, code string, window domrepo.DateRange) (models.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, code)
	f.windows = append(f.windows, window)
	if err := ctx.Err(); err != nil {
		return models.Series{Code: code}, err
	}
	if err := f.errs[code]; err != nil {
		return models.Series{Code: code}, err
	}
	if s, ok := f.series[code]; ok {
		return s, nil
	}
	return models.Series{Code: code}, nil
}

type fakeSink struct {
	name string
	err  error
	runs []*models.Run
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Save(_ context.Context, run *models.Run) error {
	s.runs = append(s.runs, run)
	return s.err
}

type fakeMetrics struct {
	mu         sync.Mutex
	errors     map[string]int
	latest     map[string]float64
	ruleFaults int
	ratio      float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: map[string]int{}, latest: map[string]float64{}}
}

func (m *fakeMetrics) RecordFetch(string, string) {}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordRuleFault(string, string) { m.ruleFaults++ }

func (m *fakeMetrics) RecordLatestValue(code string, v float64) { m.latest[code] = v }

func (m *fakeMetrics) RecordPositiveRatio(r float64) { m.ratio = r }

func (m *fakeMetrics) RecordLatency(string, float64) {}

var errNetwork = errors.New("connection reset")
