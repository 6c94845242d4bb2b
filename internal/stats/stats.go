// Package stats provides the deterministic statistics primitives shared by
// the analysis engines. Every function guards its degenerate inputs (empty
// series, zero variance, zero denominators) and returns a safe zero value
// instead of NaN or infinity.
package stats

import "math"

// Mean returns the arithmetic mean of the series, or 0 for an empty series.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance of the series.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of the series.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// PercentChange returns the percentage change from previous to current.
// A zero previous value yields 100 when current is positive and 0 otherwise,
// so callers never divide by zero.
func PercentChange(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / math.Abs(previous) * 100
}

// CoefficientOfVariation returns stddev/mean, a unit-free dispersion measure.
// Returns 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	m := Mean(values)
	if m == 0 {
		return 0
	}
	return StdDev(values) / math.Abs(m)
}

// ZScore returns how many standard deviations value sits from the mean of the
// reference series. The second return value is false when the reference has
// zero deviation; a flat series cannot support anomaly detection.
func ZScore(value, mean, stddev float64) (float64, bool) {
	if stddev == 0 {
		return 0, false
	}
	return (value - mean) / stddev, true
}

// LinearRegression fits ordinary least squares over the series with x taken
// as the index 0..n-1. The third return value is false when the x variance is
// degenerate (fewer than two points); callers fall back to the last observed
// value.
func LinearRegression(values []float64) (slope, intercept float64, ok bool) {
	n := float64(len(values))
	if len(values) < 2 {
		return 0, 0, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}

// ExponentialSmooth applies single exponential smoothing with the given alpha,
// seeded at the first value, and returns the final smoothed level. It does not
// project forward; the level acts as a stabilizer for sparse data.
func ExponentialSmooth(values []float64, alpha float64) float64 {
	if len(values) == 0 {
		return 0
	}
	level := values[0]
	for _, v := range values[1:] {
		level = alpha*v + (1-alpha)*level
	}
	return level
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GroupBy partitions items into a map keyed by keyFn, preserving input order
// inside each group. Forecast bucketing is sensitive to the exact key
// semantics, so callers pass explicit keys like year*100+month.
func GroupBy[T any, K comparable](items []T, keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := keyFn(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// SumBy folds items to a float64 total using the given value function.
func SumBy[T any](items []T, valueFn func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += valueFn(item)
	}
	return total
}
