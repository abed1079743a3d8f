package models

import "time"

// SentimentResult is the composite read of the sentiment basket.
type SentimentResult struct {
	Label         SentimentLabel `json:"label"`
	Risk          RiskLevel      `json:"risk"`
	PositiveVotes int            `json:"positive_votes"`
	NegativeVotes int            `json:"negative_votes"`
	TotalVotes    int            `json:"total_votes"`
}

// PositiveRatio returns positive/total votes, or 0 when nothing voted.
func (s SentimentResult) PositiveRatio() float64 {
	if s.TotalVotes == 0 {
		return 0
	}
	return float64(s.PositiveVotes) / float64(s.TotalVotes)
}

// Signal is a discrete directive produced by a named rule.
type Signal struct {
	Action SignalAction `json:"action"`
	Text   string       `json:"text"`
	Rule   string       `json:"rule"`
}

// Prediction is a short forward-looking statement.
type Prediction struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Diagnostic records a fault raised while evaluating a rule or pass.
type Diagnostic struct {
	Component string `json:"component"`
	Rule      string `json:"rule"`
	Message   string `json:"message"`
}

// IndicatorSummary is the latest reading and short-window trend of one indicator.
type IndicatorSummary struct {
	Code         string         `json:"code"`
	Label        string         `json:"label"`
	LatestValue  float64        `json:"latest_value"`
	LatestDate   time.Time      `json:"latest_date"`
	Observations int            `json:"observations"`
	Trend        TrendLabel     `json:"trend"`
	Volatility   VolatilityTier `json:"volatility,omitempty"`
}

// AnalysisResult is the run-level bundle handed to reporting collaborators.
// Note: no transport (json/http) concerns beyond tags here.
type AnalysisResult struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Indicators  []IndicatorSummary `json:"indicators"`
	Missing     []string           `json:"missing,omitempty"`
	Sentiment   SentimentResult    `json:"sentiment"`
	Signals     []Signal           `json:"signals"`
	Predictions []Prediction       `json:"predictions"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}

// Run is one completed analysis together with what sinks may persist.
type Run struct {
	ID         string         `json:"id"`
	RangeStart time.Time      `json:"range_start"`
	RangeEnd   time.Time      `json:"range_end"`
	Result     AnalysisResult `json:"result"`
	Report     string         `json:"-"`
	Snapshot   Snapshot       `json:"-"`
}
