package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	"github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestEngine(opts ...EngineOption) *Engine {
	return NewEngine(models.DefaultCatalog(), append([]EngineOption{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	res := newTestEngine().Analyze(models.Snapshot{})

	assert.Equal(t, fixedNow, res.GeneratedAt)
	assert.Empty(t, res.Indicators)
	assert.Equal(t, models.DefaultCatalog().Codes(), res.Missing)
	assert.Equal(t, models.SentimentUndetermined, res.Sentiment.Label)
	assert.Equal(t, models.RiskMedium, res.Sentiment.Risk)
	assert.Equal(t, []models.Signal{HoldSignal()}, res.Signals)
	assert.Equal(t, []models.Prediction{FallbackPrediction()}, res.Predictions)
	assert.Empty(t, res.Diagnostics)
}

func TestAnalyzeSummariesFollowCatalogOrder(t *testing.T) {
	snap := snapshotOf(
		mkSeries(models.CodePayrolls, 158000, 158250),
		mkSeries(models.CodeUnemployment, 4.0, 3.97, 3.94),
		mkSeries(models.CodeRealGDP), // empty counts as missing
	)
	res := newTestEngine().Analyze(snap)

	require.Len(t, res.Indicators, 2)
	assert.Equal(t, models.CodeUnemployment, res.Indicators[0].Code)
	assert.Equal(t, "Unemployment Rate (%)", res.Indicators[0].Label)
	assert.Equal(t, 3.94, res.Indicators[0].LatestValue)
	assert.Equal(t, baseDate.AddDate(0, 2, 0), res.Indicators[0].LatestDate)
	assert.Equal(t, models.TrendMildDown, res.Indicators[0].Trend)
	assert.Equal(t, models.VolatilityInsufficient, res.Indicators[0].Volatility)

	assert.Equal(t, models.CodePayrolls, res.Indicators[1].Code)
	assert.Equal(t, models.TrendInsufficient, res.Indicators[1].Trend)

	assert.Contains(t, res.Missing, models.CodeRealGDP)
	assert.NotContains(t, res.Missing, models.CodePayrolls)
	assert.Len(t, res.Missing, 12)

	require.Len(t, res.Signals, 1)
	assert.Equal(t, RuleEmploymentGrowth, res.Signals[0].Rule)
}

func TestAnalyzeSmallerCatalog(t *testing.T) {
	catalog := models.NewCatalog(models.Indicator{Code: models.CodePayrolls, Label: "Payrolls", Polarity: models.PolarityPositiveGood})
	e := NewEngine(catalog)

	res := e.Analyze(snapshotOf(
		mkSeries(models.CodePayrolls, 1, 2),
		mkSeries(models.CodeUnemployment, 5, 4),
	))
	assert.Empty(t, res.Missing)
	require.Len(t, res.Indicators, 1)
	assert.Equal(t, "Payrolls", res.Indicators[0].Label)
	// unemployment is outside the basket of this catalog
	assert.Equal(t, 1, res.Sentiment.TotalVotes)
	assert.Equal(t, models.SentimentPositive, res.Sentiment.Label)
}

func TestAnalyzeLogsRuleFaults(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEngine(WithSignalRules(SignalRule{Name: "broken", Eval: func(models.Snapshot) (*models.Signal, error) {
		panic("nil series")
	}}))
	e.SetLogger(logger.NewWriter(&buf, "warn"))

	res := e.Analyze(models.Snapshot{})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "signals", res.Diagnostics[0].Component)
	assert.Equal(t, []models.Signal{HoldSignal()}, res.Signals)
	assert.Contains(t, buf.String(), "analysis rule fault")
	assert.Contains(t, buf.String(), "broken")
}

func TestSummarizeUsesRequestedWindow(t *testing.T) {
	e := newTestEngine(WithSummaryPeriods(5))
	s := mkSeries(models.CodeFedFunds, 1, 2, 3, 4)

	assert.Equal(t, models.TrendStrongUp, e.Summarize(s, 3).Trend)
	assert.Equal(t, models.TrendInsufficient, e.Summarize(s, 5).Trend)
	assert.Equal(t, "Fed Funds Rate (%)", e.Summarize(s, 3).Label)
	assert.Equal(t, models.TrendInsufficient, e.Analyze(snapshotOf(s)).Indicators[0].Trend)
}
