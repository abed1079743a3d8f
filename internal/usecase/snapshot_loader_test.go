package usecase

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
)

func TestSnapshotLoaderSkipsEmptyAndFailed(t *testing.T) {
	f := &fakeFetcher{
		series: map[string]models.Series{
			models.CodeUnemployment: monthly(models.CodeUnemployment, 4.0, 3.9),
			models.CodePayrolls:     monthly(models.CodePayrolls, 100, 200),
		},
		errs: map[string]error{
			models.CodeFedFunds:  errNetwork,
			models.CodeInflation: errNetwork,
		},
	}
	m := newFakeMetrics()
	window := domrepo.LastDays(fixedNow, 30)

	snap, failed := NewSnapshotLoader(f, m, nil).Load(context.Background(), models.DefaultCatalog(), window)

	assert.Len(t, snap, 2)
	assert.Contains(t, snap, models.CodeUnemployment)
	assert.Contains(t, snap, models.CodePayrolls)
	assert.Equal(t, []string{models.CodeInflation, models.CodeFedFunds}, failed)
	assert.Equal(t, 2, m.errors["fetch"])

	calls := append([]string(nil), f.calls...)
	sort.Strings(calls)
	want := models.DefaultCatalog().Codes()
	sort.Strings(want)
	assert.Equal(t, want, calls, "every catalog code is requested once")
	for _, w := range f.windows {
		assert.Equal(t, window, w)
	}
}

func TestSnapshotLoaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{}
	l := NewSnapshotLoader(f, nil, nil)
	l.concurrency = 1

	snap, failed := l.Load(ctx, models.DefaultCatalog(), domrepo.LastDays(fixedNow, 30))
	assert.Empty(t, snap)
	assert.Len(t, failed, models.DefaultCatalog().Len())
}
