// Package stats provides the small set of statistical helpers used by the
// trend aggregation. Standard deviation is the population form (÷n).
package stats

import (
	"math"
	"slices"
)

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice; callers that must distinguish "no data"
// check the length first.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64

	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// MeanStdDev returns the arithmetic mean and population standard deviation.
// Returns (0, 0) for an empty slice.
func MeanStdDev(values []float64) (mean, stddev float64) {
	count := len(values)
	if count == 0 {
		return 0, 0
	}

	mean = Mean(values)

	var sumSq float64

	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return mean, math.Sqrt(sumSq / float64(count))
}

// PercentileMedian is the 50th percentile.
const PercentileMedian = 0.5

// Percentile returns the p-th percentile of values using linear interpolation.
// p must be in [0, 1]. The input slice is not modified.
// Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Median returns the 50th percentile of values.
func Median(values []float64) float64 {
	return Percentile(values, PercentileMedian)
}

// ArgMax returns the index of the first largest element, or -1 for an
// empty slice.
func ArgMax(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	best := 0

	for i, v := range values[1:] {
		if v > values[best] {
			best = i + 1
		}
	}

	return best
}
