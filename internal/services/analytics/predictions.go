package analytics

import (
	"fmt"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
)

const (
	MaxPredictions = 5

	PassIndicators = "indicators"
	PassSentiment  = "sentiment"
	PassPolicy     = "policy"
	PassFallback   = "fallback"

	predictionMinObserved = 5
	restrictiveRate       = 4.5
	accommodativeRate     = 3.0
)

type PredictionEngine struct {
	catalog models.Catalog
}

func NewPredictionEngine(catalog models.Catalog) *PredictionEngine {
	return &PredictionEngine{catalog: catalog}
}

// Predict runs the indicator, sentiment and policy passes in that order and
// keeps the first MaxPredictions statements.
func (p *PredictionEngine) Predict(snap models.Snapshot, sentiment models.SentimentResult) ([]models.Prediction, []models.Diagnostic) {
	var (
		out   []models.Prediction
		diags []models.Diagnostic
	)

	for _, ind := range p.catalog.Entries() {
		ind := ind
		d := guard("predictions", PassIndicators+":"+ind.Code, func() error {
			if pr, ok := indicatorPrediction(snap, ind); ok {
				out = append(out, pr)
			}
			return nil
		})
		if d != nil {
			diags = append(diags, *d)
		}
	}

	if pr, ok := sentimentPrediction(sentiment); ok {
		out = append(out, pr)
	}

	if d := guard("predictions", PassPolicy, func() error {
		if pr, ok := policyPrediction(snap); ok {
			out = append(out, pr)
		}
		return nil
	}); d != nil {
		diags = append(diags, *d)
	}

	if len(out) > MaxPredictions {
		out = out[:MaxPredictions]
	}
	if len(out) == 0 {
		out = append(out, FallbackPrediction())
	}
	return out, diags
}

func indicatorPrediction(snap models.Snapshot, ind models.Indicator) (models.Prediction, bool) {
	s, ok := snap.WithAtLeast(ind.Code, predictionMinObserved)
	if !ok {
		return models.Prediction{}, false
	}
	name := ind.Label
	if name == "" {
		name = ind.Code
	}

	switch ClassifyTrend(s, PredictionTrendPeriods) {
	case models.TrendStrongUp:
		return models.Prediction{Source: PassIndicators, Text: fmt.Sprintf("%s: rise may continue", name)}, true
	case models.TrendStrongDown:
		return models.Prediction{Source: PassIndicators, Text: fmt.Sprintf("%s: decline may continue", name)}, true
	}
	if ClassifyVolatility(s) == models.VolatilityHigh {
		return models.Prediction{Source: PassIndicators, Text: fmt.Sprintf("%s: high volatility expected", name)}, true
	}
	return models.Prediction{}, false
}

func sentimentPrediction(res models.SentimentResult) (models.Prediction, bool) {
	switch res.Label {
	case models.SentimentPositive:
		return models.Prediction{Source: PassSentiment, Text: "Overall outlook: positive momentum may continue"}, true
	case models.SentimentNegative:
		return models.Prediction{Source: PassSentiment, Text: "Overall outlook: negative pressure may persist"}, true
	}
	return models.Prediction{}, false
}

func policyPrediction(snap models.Snapshot) (models.Prediction, bool) {
	rate, ok := snap.WithAtLeast(models.CodeFedFunds, 2)
	if !ok {
		return models.Prediction{}, false
	}
	inflation, ok := snap.WithAtLeast(models.CodeInflation, 2)
	if !ok {
		return models.Prediction{}, false
	}
	last, _ := rate.Last()
	trend := ClassifyTrend(inflation, DefaultTrendPeriods)

	switch {
	case last.Value > restrictiveRate && trend.IsDown():
		return models.Prediction{Source: PassPolicy, Text: "Fed outlook: rate-cut signals may strengthen"}, true
	case last.Value < accommodativeRate && trend.IsUp():
		return models.Prediction{Source: PassPolicy, Text: "Fed outlook: rate-hike expectations may build"}, true
	}
	return models.Prediction{}, false
}

// FallbackPrediction is emitted when no pass produced a statement.
func FallbackPrediction() models.Prediction {
	return models.Prediction{Source: PassFallback, Text: "No clear forecast from current data; continue monitoring the market"}
}

var _ domsvc.PredictionEngine = (*PredictionEngine)(nil)
