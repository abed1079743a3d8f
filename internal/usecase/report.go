package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	"github.com/yigiitcoskun/us-economic-insights/pkg/util"
)

const (
	ruleWide   = 80
	ruleNarrow = 50
)

// recommendations by risk level, shown at the end of the text report.
var recommendations = map[models.RiskLevel][]string{
	models.RiskHigh: {
		"High-risk environment: reduce position sizes",
		"Consider hedging strategies",
		"Follow Fed statements closely",
	},
	models.RiskMedium: {
		"Balanced approach: keep watching macro data",
		"Combine with technical analysis",
		"Focus on being selective",
	},
	models.RiskLow: {
		"Low-risk environment: look for opportunities",
		"Apply trend-following strategies",
		"Position sizes may be increased",
	},
}

// Recommendations returns the strategic advice for a risk level.
func Recommendations(risk models.RiskLevel) []string {
	if r, ok := recommendations[risk]; ok {
		return r
	}
	return recommendations[models.RiskMedium]
}

// ReportFileName is the date-stamped name the text report is saved under.
func ReportFileName(t time.Time) string {
	return "economic_report_" + t.Format("20060102") + ".txt"
}

// RenderReport formats an analysis result as the plain-text daily report.
func RenderReport(res models.AnalysisResult) string {
	var b strings.Builder
	line := func(format string, a ...interface{}) {
		fmt.Fprintf(&b, format, a...)
		b.WriteByte('\n')
	}
	section := func(title string) {
		line("%s", title)
		line("%s", strings.Repeat("-", ruleNarrow))
	}

	line("%s", strings.Repeat("=", ruleWide))
	line("US ECONOMIC DATA ANALYSIS REPORT")
	line("%s", strings.Repeat("=", ruleWide))
	line("Date: %s", res.GeneratedAt.Format("2006-01-02 15:04:05"))
	line("")

	section("CURRENT ECONOMIC INDICATORS")
	for _, ind := range res.Indicators {
		line("%s: %.2f (%s) - %s", ind.Label, ind.LatestValue, util.FormatDate(ind.LatestDate), ind.Trend.Display())
	}
	if len(res.Missing) > 0 {
		line("Missing indicators: %s", strings.Join(res.Missing, ", "))
	}
	line("")

	section("MARKET SENTIMENT")
	line("Overall: %s", res.Sentiment.Label.Display())
	line("Risk Level: %s", res.Sentiment.Risk.Display())
	line("")

	section("BUY/SELL SIGNALS")
	for _, s := range res.Signals {
		line("• %s: %s", s.Action, s.Text)
	}
	line("")

	section("OUTLOOK FOR TOMORROW")
	for _, p := range res.Predictions {
		line("• %s", p.Text)
	}
	line("")

	section("STRATEGIC RECOMMENDATIONS")
	for _, r := range Recommendations(res.Sentiment.Risk) {
		line("• %s", r)
	}
	line("")
	line("%s", strings.Repeat("=", ruleWide))
	line("Analysis complete.")
	line("%s", strings.Repeat("=", ruleWide))

	return b.String()
}
