package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
	"github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

// ErrUnknownIndicator is returned for codes outside the catalog.
var ErrUnknownIndicator = errors.New("unknown indicator")

// AnalysisUseCase loads a snapshot, runs the engine and hands the run to sinks.
type AnalysisUseCase struct {
	loader       *SnapshotLoader
	fetcher      domrepo.SeriesFetcher
	analyzer     domsvc.Analyzer
	sinks        []domrepo.ReportSink
	metrics      domrepo.Metrics
	l            *logger.Logger
	lookbackDays int
	now          func() time.Time
}

type AnalysisOption func(*AnalysisUseCase)

func WithSinks(sinks ...domrepo.ReportSink) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.sinks = append(uc.sinks, sinks...) }
}

func WithLookbackDays(days int) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.lookbackDays = days }
}

func WithNow(now func() time.Time) AnalysisOption {
	return func(uc *AnalysisUseCase) { uc.now = now }
}

func NewAnalysisUseCase(fetcher domrepo.SeriesFetcher, analyzer domsvc.Analyzer, metrics domrepo.Metrics, l *logger.Logger, opts ...AnalysisOption) *AnalysisUseCase {
	if l == nil {
		l = logger.Nop()
	}
	uc := &AnalysisUseCase{
		loader:       NewSnapshotLoader(fetcher, metrics, l),
		fetcher:      fetcher,
		analyzer:     analyzer,
		metrics:      metrics,
		l:            l,
		lookbackDays: domrepo.DefaultLookbackDays,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type RunParams struct {
	Start string // YYYY-MM-DD, optional
	End   string // YYYY-MM-DD, optional
	Save  bool   // hand the run to the configured sinks
}

// Run performs one full analysis. It only fails when ctx is done; missing data
// degrades the result and sink failures are logged.
func (uc *AnalysisUseCase) Run(ctx context.Context, p RunParams) (*models.Run, error) {
	start := uc.now()
	window := domrepo.NormalizeRange(start, p.Start, p.End, uc.lookbackDays)

	snap, failed := uc.loader.Load(ctx, uc.analyzer.Catalog(), window)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	res := uc.analyzer.Analyze(snap)
	run := &models.Run{
		ID:         res.GeneratedAt.UTC().Format("20060102T150405Z"),
		RangeStart: window.Start,
		RangeEnd:   window.End,
		Result:     res,
		Report:     RenderReport(res),
		Snapshot:   snap,
	}
	uc.record(run)

	uc.l.Info("analysis run complete",
		logger.String("run_id", run.ID),
		logger.String("range", window.Key()),
		logger.Int("indicators", len(res.Indicators)),
		logger.Strings("fetch_failed", failed),
		logger.Strings("missing", res.Missing),
		logger.String("sentiment", string(res.Sentiment.Label)),
		logger.String("risk", string(res.Sentiment.Risk)),
		logger.Float64("positive_ratio", res.Sentiment.PositiveRatio()),
		logger.Bool("save", p.Save),
		logger.Duration("duration_ms", uc.now().Sub(start)),
	)

	if p.Save {
		uc.save(ctx, run)
	}
	return run, nil
}

// Indicator fetches one catalog indicator and summarizes it over periods.
func (uc *AnalysisUseCase) Indicator(ctx context.Context, code string, periods int, startDate, endDate string) (models.IndicatorSummary, error) {
	catalog := uc.analyzer.Catalog()
	if _, ok := catalog.Lookup(code); !ok {
		return models.IndicatorSummary{}, fmt.Errorf("%w: %s", ErrUnknownIndicator, code)
	}
	window := domrepo.NormalizeRange(uc.now(), startDate, endDate, uc.lookbackDays)

	s, err := uc.fetcher.FetchSeries(ctx, code, window)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("fetch")
		}
		return models.IndicatorSummary{}, err
	}
	if s.Label == "" {
		s.Label = catalog.Label(code)
	}
	return uc.analyzer.Summarize(s, periods), nil
}

// Catalog exposes the indicators the use case analyzes.
func (uc *AnalysisUseCase) Catalog() models.Catalog {
	return uc.analyzer.Catalog()
}

func (uc *AnalysisUseCase) record(run *models.Run) {
	if uc.metrics == nil {
		return
	}
	res := run.Result
	for _, ind := range res.Indicators {
		uc.metrics.RecordLatestValue(ind.Code, ind.LatestValue)
	}
	uc.metrics.RecordPositiveRatio(res.Sentiment.PositiveRatio())
	for _, d := range res.Diagnostics {
		uc.metrics.RecordRuleFault(d.Component, d.Rule)
	}
}

func (uc *AnalysisUseCase) save(ctx context.Context, run *models.Run) {
	for _, sink := range uc.sinks {
		t0 := time.Now()
		if err := sink.Save(ctx, run); err != nil {
			uc.l.Error("report sink failed",
				logger.String("sink", sink.Name()),
				logger.String("run_id", run.ID),
				logger.Error(err),
			)
			if uc.metrics != nil {
				uc.metrics.RecordError("sink_" + sink.Name())
			}
			continue
		}
		if uc.metrics != nil {
			uc.metrics.RecordLatency("sink_"+sink.Name(), time.Since(t0).Seconds())
		}
	}
}
