package analytics

import (
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
	"github.com/yigiitcoskun/us-economic-insights/internal/services/features"
)

const (
	MinVolatilityObservations = 10

	highVolatility   = 0.1
	mediumVolatility = 0.05
)

// ClassifyVolatility labels the sample standard deviation of percentage changes.
// A dispersion that cannot be computed (NaN) falls through to low.
func ClassifyVolatility(s models.Series) models.VolatilityTier {
	if s.Len() < MinVolatilityObservations {
		return models.VolatilityInsufficient
	}
	sd := features.SampleStdDev(features.PctChange(s.Values()))
	switch {
	case sd > highVolatility:
		return models.VolatilityHigh
	case sd > mediumVolatility:
		return models.VolatilityMedium
	default:
		return models.VolatilityLow
	}
}

type VolatilityClassifier struct{}

func (VolatilityClassifier) Classify(s models.Series) models.VolatilityTier {
	return ClassifyVolatility(s)
}

var _ domsvc.VolatilityClassifier = VolatilityClassifier{}
