package features

import "math"

// Diff computes successive differences d_i = x_i - x_{i-1}.
// It returns a slice of length len(xs)-1, or nil if insufficient data.
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out = append(out, xs[i]-xs[i-1])
	}
	return out
}

// Mean returns the arithmetic mean, NaN for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// PctChange computes period-over-period returns r_i = x_i / x_{i-1} - 1.
// Undefined entries (0/0) are dropped; a zero base with a non-zero value yields ±Inf
// and is kept, so any dispersion computed over it is NaN.
func PctChange(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, 0, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		r := xs[i]/xs[i-1] - 1
		if math.IsNaN(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SampleStdDev computes the n-1 standard deviation. Fewer than two points yield NaN.
func SampleStdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
