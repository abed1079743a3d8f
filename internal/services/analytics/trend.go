package analytics

import (
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
	"github.com/yigiitcoskun/us-economic-insights/internal/services/features"
)

const (
	// DefaultTrendPeriods is the window used by reports and the macro-pair rule.
	DefaultTrendPeriods = 3
	// PredictionTrendPeriods is the window of the per-indicator prediction pass.
	PredictionTrendPeriods = 5

	strongTrend = 0.1
	mildTrend   = 0.01
)

// ClassifyTrend labels the mean successive difference of the last periods values.
// Thresholds are absolute and are not scaled to the series.
func ClassifyTrend(s models.Series, periods int) models.TrendLabel {
	if s.Len() < periods {
		return models.TrendInsufficient
	}
	window := s.Tail(periods)
	if len(window) < 2 {
		return models.TrendIndeterminate
	}

	avg := features.Mean(features.Diff(window))
	switch {
	case avg > strongTrend:
		return models.TrendStrongUp
	case avg > mildTrend:
		return models.TrendMildUp
	case avg < -strongTrend:
		return models.TrendStrongDown
	case avg < -mildTrend:
		return models.TrendMildDown
	default:
		return models.TrendStable
	}
}

type TrendClassifier struct{}

func (TrendClassifier) Classify(s models.Series, periods int) models.TrendLabel {
	return ClassifyTrend(s, periods)
}

var _ domsvc.TrendClassifier = TrendClassifier{}
