package repository

import (
	"context"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
)

// SeriesFetcher retrieves one indicator series. Implementations return an
// empty series (not an error) when the source answers without usable
// observations. Transport failures, non-2xx statuses, an open breaker and a
// cancelled ctx are returned as errors; SnapshotLoader.Load logs those and
// treats the indicator as absent, so a failed fetch never fails a run.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, code string, window DateRange) (models.Series, error)
}

// ReportSink receives every finished analysis run.
type ReportSink interface {
	Name() string
	Save(ctx context.Context, run *models.Run) error
}

// Storage persists analysis runs and the observations behind them.
type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreRun(ctx context.Context, run *models.Run) error
	StoreObservations(ctx context.Context, snap models.Snapshot) error
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordFetch(code, result string)
	RecordError(kind string)
	RecordRuleFault(component, rule string)
	RecordLatestValue(code string, value float64)
	RecordPositiveRatio(ratio float64)
	RecordLatency(op string, seconds float64)
}
