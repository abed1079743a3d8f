package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	"github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

const defaultFetchConcurrency = 4

// SnapshotLoader fetches every catalog indicator and assembles the snapshot.
type SnapshotLoader struct {
	fetcher     domrepo.SeriesFetcher
	metrics     domrepo.Metrics
	l           *logger.Logger
	timeout     time.Duration
	concurrency int
}

func NewSnapshotLoader(fetcher domrepo.SeriesFetcher, metrics domrepo.Metrics, l *logger.Logger) *SnapshotLoader {
	if l == nil {
		l = logger.Nop()
	}
	return &SnapshotLoader{
		fetcher:     fetcher,
		metrics:     metrics,
		l:           l,
		timeout:     2 * time.Minute,
		concurrency: defaultFetchConcurrency,
	}
}

// Load never fails: an indicator whose fetch errors or comes back empty is
// simply absent from the snapshot and counted in the returned failures.
func (sl *SnapshotLoader) Load(ctx context.Context, catalog models.Catalog, window domrepo.DateRange) (models.Snapshot, []string) {
	ctx, cancel := context.WithTimeout(ctx, sl.timeout)
	defer cancel()

	type item struct {
		code   string
		series models.Series
		err    error
	}
	codes := catalog.Codes()
	ch := make(chan item, len(codes))
	sem := make(chan struct{}, sl.concurrency)
	var wg sync.WaitGroup

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				ch <- item{code: code, err: ctx.Err()}
				return
			}
			s, err := sl.fetcher.FetchSeries(ctx, code, window)
			ch <- item{code: code, series: s, err: err}
		}(code)
	}

	go func() { wg.Wait(); close(ch) }()

	snap := make(models.Snapshot, len(codes))
	var failed []string
	for it := range ch {
		if it.err != nil {
			sl.l.Warn("indicator fetch failed",
				logger.String("code", it.code),
				logger.Error(it.err),
			)
			if sl.metrics != nil {
				sl.metrics.RecordError("fetch")
			}
			failed = append(failed, it.code)
			continue
		}
		if it.series.IsEmpty() {
			continue
		}
		if it.series.Code == "" {
			it.series.Code = it.code
		}
		snap[it.code] = it.series
	}

	sort.Strings(failed)
	sl.l.Info("snapshot loaded",
		logger.Int("requested", len(codes)),
		logger.Int("loaded", len(snap)),
		logger.Int("failed", len(failed)),
	)
	return snap, failed
}
