package analytics

import (
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
)

const (
	positiveRatioFloor = 0.7
	neutralRatioFloor  = 0.4
)

// SentimentAggregator votes every catalog indicator that carries a polarity.
type SentimentAggregator struct {
	catalog models.Catalog
}

func NewSentimentAggregator(catalog models.Catalog) *SentimentAggregator {
	return &SentimentAggregator{catalog: catalog}
}

func (a *SentimentAggregator) Aggregate(snap models.Snapshot) models.SentimentResult {
	var res models.SentimentResult
	for _, ind := range a.catalog.Entries() {
		if ind.Polarity == models.PolarityNone {
			continue
		}
		s, ok := snap.WithAtLeast(ind.Code, 2)
		if !ok {
			continue
		}
		change, _ := s.LastChange()

		positive := change > 0
		if ind.Polarity == models.PolarityNegativeGood {
			positive = !positive
		}
		if positive {
			res.PositiveVotes++
		} else {
			res.NegativeVotes++
		}
		res.TotalVotes++
	}

	if res.TotalVotes == 0 {
		res.Label, res.Risk = models.SentimentUndetermined, models.RiskMedium
		return res
	}

	ratio := res.PositiveRatio()
	switch {
	case ratio >= positiveRatioFloor:
		res.Label, res.Risk = models.SentimentPositive, models.RiskLow
	case ratio >= neutralRatioFloor:
		res.Label, res.Risk = models.SentimentNeutral, models.RiskMedium
	default:
		res.Label, res.Risk = models.SentimentNegative, models.RiskHigh
	}
	return res
}

var _ domsvc.SentimentAggregator = (*SentimentAggregator)(nil)
