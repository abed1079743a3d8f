package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
)

func TestSignalsHoldWhenNoRuleIndicators(t *testing.T) {
	g := NewSignalGenerator()

	got, diags := g.Generate(snapshotOf(mkSeries(models.CodeRealGDP, 1, 2, 3)))
	require.Len(t, got, 1)
	assert.Equal(t, models.ActionHold, got[0].Action)
	assert.Equal(t, RuleNoSignal, got[0].Rule)
	assert.Empty(t, diags)
}

func TestPolicyRateRule(t *testing.T) {
	cases := []struct {
		name string
		vals []float64
		want []models.SignalAction
	}{
		{"cut", []float64{5.5, 5.5, 5.0}, []models.SignalAction{models.ActionBuy}},
		{"hike", []float64{4.0, 4.5, 5.0}, []models.SignalAction{models.ActionSell}},
		// 5.25-5.5 is exactly -0.25 and the cut rule needs a drop strictly beyond 0.25
		{"quarter point cut is not enough", []float64{5.75, 5.5, 5.25}, []models.SignalAction{models.ActionHold}},
		{"quarter point tail after a flat month", []float64{5.5, 5.5, 5.25}, []models.SignalAction{models.ActionHold}},
		{"two points only", []float64{5.5, 4.0}, []models.SignalAction{models.ActionHold}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := NewSignalGenerator().Generate(snapshotOf(mkSeries(models.CodeFedFunds, tc.vals...)))
			assert.Equal(t, tc.want, actions(got))
		})
	}
}

func TestMacroPairRule(t *testing.T) {
	t.Run("both falling", func(t *testing.T) {
		snap := snapshotOf(
			mkSeries(models.CodeUnemployment, 4.0, 3.97, 3.94), // mild down
			mkSeries(models.CodeInflation, 300, 299, 298),      // strong down
		)
		got, _ := NewSignalGenerator().Generate(snap)
		require.Len(t, got, 1)
		assert.Equal(t, models.ActionBuy, got[0].Action)
		assert.Equal(t, RuleMacroPair, got[0].Rule)
	})

	t.Run("both rising", func(t *testing.T) {
		snap := snapshotOf(
			mkSeries(models.CodeUnemployment, 3.5, 3.55, 3.6),
			mkSeries(models.CodeInflation, 300, 301, 302),
		)
		got, _ := NewSignalGenerator().Generate(snap)
		require.Len(t, got, 1)
		assert.Equal(t, models.ActionSell, got[0].Action)
	})

	t.Run("mixed", func(t *testing.T) {
		snap := snapshotOf(
			mkSeries(models.CodeUnemployment, 3.5, 3.55, 3.6),
			mkSeries(models.CodeInflation, 300, 299, 298),
		)
		got, _ := NewSignalGenerator().Generate(snap)
		assert.Equal(t, []models.SignalAction{models.ActionHold}, actions(got))
	})

	t.Run("insufficient trend", func(t *testing.T) {
		snap := snapshotOf(
			mkSeries(models.CodeUnemployment, 4.0, 3.0),
			mkSeries(models.CodeInflation, 300, 290),
		)
		got, _ := NewSignalGenerator().Generate(snap)
		assert.Equal(t, []models.SignalAction{models.ActionHold}, actions(got))
	})
}

func TestConsumerConfidenceRule(t *testing.T) {
	got, _ := NewSignalGenerator().Generate(snapshotOf(mkSeries(models.CodeConsumerSentiment, 60, 66)))
	assert.Equal(t, []models.SignalAction{models.ActionBuy}, actions(got))

	got, _ = NewSignalGenerator().Generate(snapshotOf(mkSeries(models.CodeConsumerSentiment, 66, 60)))
	assert.Equal(t, []models.SignalAction{models.ActionSell}, actions(got))

	got, _ = NewSignalGenerator().Generate(snapshotOf(mkSeries(models.CodeConsumerSentiment, 60, 65)))
	assert.Equal(t, []models.SignalAction{models.ActionHold}, actions(got))
}

func TestEmploymentGrowthRule(t *testing.T) {
	cases := []struct {
		change float64
		want   models.SignalAction
	}{
		{250, models.ActionBuy},
		{-60, models.ActionSell},
		{50, models.ActionHold},
		{200, models.ActionHold},
		{-50, models.ActionHold},
	}
	for _, tc := range cases {
		got, _ := NewSignalGenerator().Generate(snapshotOf(mkSeries(models.CodePayrolls, 158000, 158000+tc.change)))
		require.Len(t, got, 1)
		assert.Equal(t, tc.want, got[0].Action, "change %v", tc.change)
	}
}

func TestSignalsKeepRuleOrder(t *testing.T) {
	snap := snapshotOf(
		mkSeries(models.CodeFedFunds, 5.5, 5.5, 5.0),
		mkSeries(models.CodeUnemployment, 3.5, 3.55, 3.6),
		mkSeries(models.CodeInflation, 300, 301, 302),
		mkSeries(models.CodeConsumerSentiment, 60, 70),
		mkSeries(models.CodePayrolls, 158000, 157900),
	)
	got, diags := NewSignalGenerator().Generate(snap)
	assert.Empty(t, diags)

	rules := make([]string, len(got))
	for i, s := range got {
		rules[i] = s.Rule
	}
	assert.Equal(t, []string{RulePolicyRate, RuleMacroPair, RuleConsumerConfidence, RuleEmploymentGrowth}, rules)
	assert.Equal(t, []models.SignalAction{models.ActionBuy, models.ActionSell, models.ActionBuy, models.ActionSell}, actions(got))
}

func TestSignalsIsolateFaultyRules(t *testing.T) {
	rules := []SignalRule{
		{Name: "panics", Eval: func(models.Snapshot) (*models.Signal, error) {
			var s []float64
			_ = s[3]
			return nil, nil
		}},
		{Name: "errors", Eval: func(models.Snapshot) (*models.Signal, error) {
			return nil, errors.New("bad input")
		}},
		{Name: RuleEmploymentGrowth, Eval: employmentGrowthRule},
	}
	g := NewSignalGenerator(rules...)

	got, diags := g.Generate(snapshotOf(mkSeries(models.CodePayrolls, 100, 400)))
	assert.Equal(t, []models.SignalAction{models.ActionBuy}, actions(got))
	require.Len(t, diags, 2)
	assert.Equal(t, "panics", diags[0].Rule)
	assert.Contains(t, diags[0].Message, "panic")
	assert.Equal(t, "errors", diags[1].Rule)
	assert.Equal(t, "bad input", diags[1].Message)

	// every rule faulting still yields a hold
	got, diags = g.Generate(models.Snapshot{})
	assert.Equal(t, []models.SignalAction{models.ActionHold}, actions(got))
	assert.Len(t, diags, 2)
}
