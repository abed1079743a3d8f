package repository

import (
	"time"

	"github.com/yigiitcoskun/us-economic-insights/pkg/util"
)

// DefaultLookbackDays is the fetch window used when no range is given.
const DefaultLookbackDays = 365

// DateRange is an inclusive day range for series fetches.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the range [now-days, now] truncated to whole days.
func LastDays(now time.Time, days int) DateRange {
	if days <= 0 {
		days = DefaultLookbackDays
	}
	end := util.TruncateDay(now)
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

// IsValid reports whether both ends are set and Start is not after End.
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

// Key renders the range for cache keys and logs.
func (r DateRange) Key() string {
	return util.FormatDate(r.Start) + ":" + util.FormatDate(r.End)
}

// NormalizeRange parses optional YYYY-MM-DD bounds, filling the gaps from the
// default lookback ending at now. An inverted range falls back to the default.
func NormalizeRange(now time.Time, start, end string, lookbackDays int) DateRange {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	def := LastDays(now, lookbackDays)
	r := DateRange{
		Start: util.ParseTimeDefault(start, def.Start),
		End:   util.ParseTimeDefault(end, def.End),
	}
	if end != "" && start == "" {
		r.Start = r.End.AddDate(0, 0, -lookbackDays)
	}
	if !r.IsValid() {
		return def
	}
	return r
}
