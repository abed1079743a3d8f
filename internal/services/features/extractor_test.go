package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	assert.Nil(t, Diff([]float64{1}))
	assert.Equal(t, []float64{1, -2, 0}, Diff([]float64{1, 2, 0, 0}))
}

func TestMean(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestPctChange(t *testing.T) {
	got := PctChange([]float64{100, 110, 99})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.1, got[0], 1e-12)
	assert.InDelta(t, -0.1, got[1], 1e-12)
}

func TestPctChangeDropsUndefined(t *testing.T) {
	got := PctChange([]float64{0, 0, 5})
	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0], 1))
}

func TestSampleStdDev(t *testing.T) {
	assert.True(t, math.IsNaN(SampleStdDev([]float64{1})))
	// variance of {2,4,4,4,5,5,7,9} with n-1 is 32/7
	assert.InDelta(t, math.Sqrt(32.0/7.0), SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}
