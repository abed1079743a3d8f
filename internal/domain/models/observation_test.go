package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestNewSeriesCoercesSortsAndDedups(t *testing.T) {
	raw := []RawObservation{
		{Date: "2024-03-01", Value: "3.9"},
		{Date: "2024-01-01", Value: "3.7"},
		{Date: "2024-02-01", Value: "."}, // FRED marks gaps with a dot
		{Date: "not-a-date", Value: "1"},
		{Date: "2024-01-01", Value: "9.9"},
		{Date: "2024-02-01", Value: " 3.8 "},
	}

	s := NewSeries(CodeUnemployment, "Unemployment", raw)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{3.7, 3.8, 3.9}, s.Values())
	assert.Equal(t, day(2024, 1, 1), s.Observations[0].Date)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 1), last.Date)
}

func TestNewSeriesEmpty(t *testing.T) {
	s := NewSeries("X", "", nil)
	assert.True(t, s.IsEmpty())
	_, ok := s.Last()
	assert.False(t, ok)
	_, ok = s.LastChange()
	assert.False(t, ok)

	s = NewSeries("X", "", []RawObservation{{Date: "2024-01-01", Value: "."}})
	assert.True(t, s.IsEmpty())
}

func TestSeriesTail(t *testing.T) {
	s := NewSeries("X", "", []RawObservation{
		{Date: "2024-01-01", Value: "1"},
		{Date: "2024-02-01", Value: "2"},
		{Date: "2024-03-01", Value: "4"},
	})
	assert.Equal(t, []float64{2, 4}, s.Tail(2))
	assert.Equal(t, []float64{1, 2, 4}, s.Tail(10))
	assert.Nil(t, s.Tail(0))

	change, ok := s.LastChange()
	require.True(t, ok)
	assert.Equal(t, 2.0, change)
}

func TestSnapshotLookups(t *testing.T) {
	snap := Snapshot{
		"A": {Code: "A", Observations: []Observation{{Date: day(2024, 1, 1), Value: 1}}},
		"B": {Code: "B"},
	}

	_, ok := snap.Get("A")
	assert.True(t, ok)
	_, ok = snap.Get("B")
	assert.False(t, ok, "empty series counts as absent")
	_, ok = snap.Get("C")
	assert.False(t, ok)

	_, ok = snap.WithAtLeast("A", 1)
	assert.True(t, ok)
	_, ok = snap.WithAtLeast("A", 2)
	assert.False(t, ok)
}
