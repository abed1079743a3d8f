package models

import (
	"sort"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/pkg/util"
)

// Observation is one dated value of an economic indicator.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// RawObservation is an observation as delivered by a data source, before coercion.
type RawObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Series is a chronologically ascending set of observations for one indicator.
// It is built once per run by NewSeries and must not be mutated afterwards.
type Series struct {
	Code         string        `json:"code"`
	Label        string        `json:"label"`
	Observations []Observation `json:"observations"`
}

// NewSeries validates raw pairs into a Series. Pairs whose date or value does not
// parse are dropped, the rest are sorted ascending and deduplicated by date
// (first occurrence wins). Empty or fully invalid input yields an empty series.
func NewSeries(code, label string, raw []RawObservation) Series {
	obs := make([]Observation, 0, len(raw))
	for _, r := range raw {
		ts, ok := util.ParseTime(r.Date)
		if !ok {
			continue
		}
		v, ok := util.ParseFloat(r.Value)
		if !ok {
			continue
		}
		obs = append(obs, Observation{Date: ts, Value: v})
	}
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	out := obs[:0]
	for i, o := range obs {
		if i > 0 && o.Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, o)
	}
	return Series{Code: code, Label: label, Observations: out}
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Observations) }

// IsEmpty reports whether the series holds no observations.
func (s Series) IsEmpty() bool { return len(s.Observations) == 0 }

// Values returns the observation values in chronological order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Value
	}
	return out
}

// Tail returns the values of the last n observations (all of them if n exceeds the length).
func (s Series) Tail(n int) []float64 {
	if n <= 0 {
		return nil
	}
	vals := s.Values()
	if n >= len(vals) {
		return vals
	}
	return vals[len(vals)-n:]
}

// Last returns the most recent observation.
func (s Series) Last() (Observation, bool) {
	if len(s.Observations) == 0 {
		return Observation{}, false
	}
	return s.Observations[len(s.Observations)-1], true
}

// LastChange returns last value minus second-to-last value.
func (s Series) LastChange() (float64, bool) {
	n := len(s.Observations)
	if n < 2 {
		return 0, false
	}
	return s.Observations[n-1].Value - s.Observations[n-2].Value, true
}

// Snapshot holds all data available for one analysis run, keyed by indicator code.
// A missing key means no usable data for that indicator.
type Snapshot map[string]Series

// Get returns the series for code if present and non-empty.
func (s Snapshot) Get(code string) (Series, bool) {
	ser, ok := s[code]
	if !ok || ser.IsEmpty() {
		return Series{}, false
	}
	return ser, true
}

// WithAtLeast returns the series for code when it has at least n observations.
func (s Snapshot) WithAtLeast(code string, n int) (Series, bool) {
	ser, ok := s.Get(code)
	if !ok || ser.Len() < n {
		return Series{}, false
	}
	return ser, true
}
