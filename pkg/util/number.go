package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat coerces a raw observation value. FRED marks missing values with ".",
// which fails here like any other non-numeric text. NaN and infinities are rejected.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
