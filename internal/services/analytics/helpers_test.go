package analytics

import (
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// mkSeries builds a monthly series starting at baseDate.
func mkSeries(code string, vals ...float64) models.Series {
	obs := make([]models.Observation, len(vals))
	for i, v := range vals {
		obs[i] = models.Observation{Date: baseDate.AddDate(0, i, 0), Value: v}
	}
	return models.Series{Code: code, Observations: obs}
}

func snapshotOf(series ...models.Series) models.Snapshot {
	snap := models.Snapshot{}
	for _, s := range series {
		snap[s.Code] = s
	}
	return snap
}

func actions(signals []models.Signal) []models.SignalAction {
	out := make([]models.SignalAction, len(signals))
	for i, s := range signals {
		out[i] = s.Action
	}
	return out
}
