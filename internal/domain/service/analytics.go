package service

import (
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
)

// TrendClassifier labels the average change over the last periods observations.
type TrendClassifier interface {
	Classify(s models.Series, periods int) models.TrendLabel
}

// VolatilityClassifier labels the dispersion of period-over-period changes.
type VolatilityClassifier interface {
	Classify(s models.Series) models.VolatilityTier
}

// SentimentAggregator votes the polarity basket into a composite read.
type SentimentAggregator interface {
	Aggregate(snap models.Snapshot) models.SentimentResult
}

// SignalGenerator applies the ordered signal rules. It never fails: faults in
// individual rules come back as diagnostics.
type SignalGenerator interface {
	Generate(snap models.Snapshot) ([]models.Signal, []models.Diagnostic)
}

// PredictionEngine produces at most five forward-looking statements.
type PredictionEngine interface {
	Predict(snap models.Snapshot, sentiment models.SentimentResult) ([]models.Prediction, []models.Diagnostic)
}

// Analyzer runs the full pipeline over one snapshot.
type Analyzer interface {
	Analyze(snap models.Snapshot) models.AnalysisResult
	Summarize(s models.Series, periods int) models.IndicatorSummary
	Catalog() models.Catalog
}
