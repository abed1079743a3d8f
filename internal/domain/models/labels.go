package models

// TrendLabel is the directional classification of recent average change.
type TrendLabel string

const (
	TrendStrongUp      TrendLabel = "strong_up"
	TrendMildUp        TrendLabel = "mild_up"
	TrendStrongDown    TrendLabel = "strong_down"
	TrendMildDown      TrendLabel = "mild_down"
	TrendStable        TrendLabel = "stable"
	TrendInsufficient  TrendLabel = "insufficient"
	TrendIndeterminate TrendLabel = "indeterminate"
)

// IsUp reports whether the trend points upward (strong or mild).
func (t TrendLabel) IsUp() bool { return t == TrendStrongUp || t == TrendMildUp }

// IsDown reports whether the trend points downward (strong or mild).
func (t TrendLabel) IsDown() bool { return t == TrendStrongDown || t == TrendMildDown }

// Display returns the human-readable form used in reports.
func (t TrendLabel) Display() string {
	switch t {
	case TrendStrongUp:
		return "Strong Rise"
	case TrendMildUp:
		return "Mild Rise"
	case TrendStrongDown:
		return "Strong Decline"
	case TrendMildDown:
		return "Mild Decline"
	case TrendStable:
		return "Stable"
	case TrendInsufficient:
		return "Insufficient data"
	case TrendIndeterminate:
		return "Indeterminate"
	default:
		return string(t)
	}
}

// VolatilityTier is the dispersion class of period-over-period percentage changes.
type VolatilityTier string

const (
	VolatilityHigh         VolatilityTier = "high"
	VolatilityMedium       VolatilityTier = "medium"
	VolatilityLow          VolatilityTier = "low"
	VolatilityInsufficient VolatilityTier = "insufficient"
)

func (v VolatilityTier) Display() string {
	switch v {
	case VolatilityHigh:
		return "High Volatility"
	case VolatilityMedium:
		return "Medium Volatility"
	case VolatilityLow:
		return "Low Volatility"
	case VolatilityInsufficient:
		return "Insufficient data"
	default:
		return string(v)
	}
}

// SentimentLabel is the composite market read.
type SentimentLabel string

const (
	SentimentPositive     SentimentLabel = "positive"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentNegative     SentimentLabel = "negative"
	SentimentUndetermined SentimentLabel = "undetermined"
)

func (s SentimentLabel) Display() string {
	switch s {
	case SentimentPositive:
		return "Positive"
	case SentimentNeutral:
		return "Neutral"
	case SentimentNegative:
		return "Negative"
	case SentimentUndetermined:
		return "Undetermined"
	default:
		return string(s)
	}
}

// RiskLevel is derived from the positive-vote ratio of the sentiment basket.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

func (r RiskLevel) Display() string {
	switch r {
	case RiskLow:
		return "Low Risk"
	case RiskMedium:
		return "Medium Risk"
	case RiskHigh:
		return "High Risk"
	default:
		return string(r)
	}
}

// Polarity tells the sentiment aggregator how a rising value should be read.
type Polarity string

const (
	// PolarityNone excludes the indicator from the sentiment basket.
	PolarityNone Polarity = ""
	// PolarityPositiveGood: a rise is a positive vote (e.g. payrolls).
	PolarityPositiveGood Polarity = "positive_good"
	// PolarityNegativeGood: a rise is a negative vote (e.g. unemployment).
	PolarityNegativeGood Polarity = "negative_good"
)

// SignalAction is the directive carried by a Signal.
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
)
