package analytics

import (
	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domsvc "github.com/yigiitcoskun/us-economic-insights/internal/domain/service"
)

const (
	RulePolicyRate         = "policy_rate"
	RuleMacroPair          = "macro_pair"
	RuleConsumerConfidence = "consumer_confidence"
	RuleEmploymentGrowth   = "employment_growth"
	RuleNoSignal           = "no_signal"

	policyRateStep        = 0.25
	confidenceSwing       = 5.0
	payrollGrowthFloor    = 200.0 // thousand jobs
	payrollLossFloor      = -50.0
	policyRateMinObserved = 3
)

// SignalRule inspects the snapshot and returns at most one signal.
// A nil signal with a nil error means the rule did not fire.
type SignalRule struct {
	Name string
	Eval func(snap models.Snapshot) (*models.Signal, error)
}

// DefaultSignalRules returns the rule set in evaluation order.
func DefaultSignalRules() []SignalRule {
	return []SignalRule{
		{Name: RulePolicyRate, Eval: policyRateRule},
		{Name: RuleMacroPair, Eval: macroPairRule},
		{Name: RuleConsumerConfidence, Eval: consumerConfidenceRule},
		{Name: RuleEmploymentGrowth, Eval: employmentGrowthRule},
	}
}

func policyRateRule(snap models.Snapshot) (*models.Signal, error) {
	s, ok := snap.WithAtLeast(models.CodeFedFunds, policyRateMinObserved)
	if !ok {
		return nil, nil
	}
	w := s.Tail(policyRateMinObserved)
	change := w[len(w)-1] - w[len(w)-2]
	switch {
	case change < -policyRateStep:
		return &models.Signal{Action: models.ActionBuy, Rule: RulePolicyRate, Text: "Fed rate cut eases risk appetite"}, nil
	case change > policyRateStep:
		return &models.Signal{Action: models.ActionSell, Rule: RulePolicyRate, Text: "Fed rate hike dampens risk appetite"}, nil
	}
	return nil, nil
}

func macroPairRule(snap models.Snapshot) (*models.Signal, error) {
	unemployment, ok := snap.Get(models.CodeUnemployment)
	if !ok {
		return nil, nil
	}
	inflation, ok := snap.Get(models.CodeInflation)
	if !ok {
		return nil, nil
	}
	u := ClassifyTrend(unemployment, DefaultTrendPeriods)
	i := ClassifyTrend(inflation, DefaultTrendPeriods)
	switch {
	case u.IsDown() && i.IsDown():
		return &models.Signal{Action: models.ActionBuy, Rule: RuleMacroPair, Text: "Falling unemployment and falling inflation: ideal macro backdrop"}, nil
	case u.IsUp() && i.IsUp():
		return &models.Signal{Action: models.ActionSell, Rule: RuleMacroPair, Text: "Stagflation risk: rising unemployment and rising inflation"}, nil
	}
	return nil, nil
}

func consumerConfidenceRule(snap models.Snapshot) (*models.Signal, error) {
	s, ok := snap.WithAtLeast(models.CodeConsumerSentiment, 2)
	if !ok {
		return nil, nil
	}
	change, _ := s.LastChange()
	switch {
	case change > confidenceSwing:
		return &models.Signal{Action: models.ActionBuy, Rule: RuleConsumerConfidence, Text: "Strong rise in consumer confidence"}, nil
	case change < -confidenceSwing:
		return &models.Signal{Action: models.ActionSell, Rule: RuleConsumerConfidence, Text: "Consumer confidence is weakening"}, nil
	}
	return nil, nil
}

func employmentGrowthRule(snap models.Snapshot) (*models.Signal, error) {
	s, ok := snap.WithAtLeast(models.CodePayrolls, 2)
	if !ok {
		return nil, nil
	}
	change, _ := s.LastChange()
	switch {
	case change > payrollGrowthFloor:
		return &models.Signal{Action: models.ActionBuy, Rule: RuleEmploymentGrowth, Text: "Strong employment growth"}, nil
	case change < payrollLossFloor:
		return &models.Signal{Action: models.ActionSell, Rule: RuleEmploymentGrowth, Text: "Employment losses"}, nil
	}
	return nil, nil
}

// HoldSignal is emitted when no rule fired.
func HoldSignal() models.Signal {
	return models.Signal{Action: models.ActionHold, Rule: RuleNoSignal, Text: "No clear signal, proceed cautiously"}
}

type SignalGenerator struct {
	rules []SignalRule
}

// NewSignalGenerator uses DefaultSignalRules when no rules are given.
func NewSignalGenerator(rules ...SignalRule) *SignalGenerator {
	if len(rules) == 0 {
		rules = DefaultSignalRules()
	}
	return &SignalGenerator{rules: rules}
}

// Generate evaluates every rule in order. A faulty rule contributes a
// diagnostic instead of a signal and does not stop the others.
func (g *SignalGenerator) Generate(snap models.Snapshot) ([]models.Signal, []models.Diagnostic) {
	signals := make([]models.Signal, 0, len(g.rules))
	var diags []models.Diagnostic

	for _, rule := range g.rules {
		var sig *models.Signal
		d := guard("signals", rule.Name, func() error {
			var err error
			sig, err = rule.Eval(snap)
			return err
		})
		if d != nil {
			diags = append(diags, *d)
			continue
		}
		if sig != nil {
			signals = append(signals, *sig)
		}
	}

	if len(signals) == 0 {
		signals = append(signals, HoldSignal())
	}
	return signals, diags
}

var _ domsvc.SignalGenerator = (*SignalGenerator)(nil)
