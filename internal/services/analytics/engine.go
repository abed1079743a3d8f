package analytics

import (
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
	"github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

// Engine composes the classifiers, the sentiment basket, the signal rules and
// the prediction passes into one synchronous analysis over a snapshot.
type Engine struct {
	catalog     models.Catalog
	sentiment   domsvc.SentimentAggregator
	signals     domsvc.SignalGenerator
	predictions domsvc.PredictionEngine
	periods     int
	now         func() time.Time
	l           *logger.Logger
}

type EngineOption func(*Engine)

// WithSignalRules replaces the default rule set.
func WithSignalRules(rules ...SignalRule) EngineOption {
	return func(e *Engine) { e.signals = NewSignalGenerator(rules...) }
}

// WithSummaryPeriods sets the trend window shown per indicator. It does not
// affect the signal or prediction rules.
func WithSummaryPeriods(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.periods = n
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(catalog models.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:     catalog,
		sentiment:   NewSentimentAggregator(catalog),
		signals:     NewSignalGenerator(),
		predictions: NewPredictionEngine(catalog),
		periods:     DefaultTrendPeriods,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLogger enables diagnostic logging (optional).
func (e *Engine) SetLogger(l *logger.Logger) { e.l = l }

func (e *Engine) Catalog() models.Catalog { return e.catalog }

// Summarize reports the latest reading, trend and volatility of one series.
func (e *Engine) Summarize(s models.Series, periods int) models.IndicatorSummary {
	sum := models.IndicatorSummary{
		Code:         s.Code,
		Label:        s.Label,
		Observations: s.Len(),
		Trend:        ClassifyTrend(s, periods),
		Volatility:   ClassifyVolatility(s),
	}
	if sum.Label == "" {
		sum.Label = e.catalog.Label(s.Code)
	}
	if last, ok := s.Last(); ok {
		sum.LatestValue = last.Value
		sum.LatestDate = last.Date
	}
	return sum
}

// Analyze always returns a complete result. Indicators absent from the
// snapshot are skipped by every rule and listed in Missing.
func (e *Engine) Analyze(snap models.Snapshot) models.AnalysisResult {
	res := models.AnalysisResult{GeneratedAt: e.now()}

	for _, ind := range e.catalog.Entries() {
		s, ok := snap.Get(ind.Code)
		if !ok {
			res.Missing = append(res.Missing, ind.Code)
			continue
		}
		if s.Label == "" {
			s.Label = ind.Label
		}
		res.Indicators = append(res.Indicators, e.Summarize(s, e.periods))
	}

	res.Sentiment = e.sentiment.Aggregate(snap)

	var diags []models.Diagnostic
	res.Signals, diags = e.signals.Generate(snap)
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Predictions, diags = e.predictions.Predict(snap, res.Sentiment)
	res.Diagnostics = append(res.Diagnostics, diags...)

	if e.l != nil {
		for _, d := range res.Diagnostics {
			e.l.Warn("analysis rule fault",
				logger.String("component", d.Component),
				logger.String("rule", d.Rule),
				logger.String("message", d.Message),
			)
		}
		e.l.Debug("analysis complete",
			logger.Int("indicators", len(res.Indicators)),
			logger.Int("missing", len(res.Missing)),
			logger.String("sentiment", string(res.Sentiment.Label)),
			logger.Int("signals", len(res.Signals)),
			logger.Int("predictions", len(res.Predictions)),
		)
	}
	return res
}

var _ domsvc.Analyzer = (*Engine)(nil)
