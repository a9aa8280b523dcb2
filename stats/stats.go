// Package stats implements the sample estimators used over return sequences.
//
// The functions are basis-agnostic: they work on whatever periodicity they are
// given, annualization is applied by callers with the Annualize helpers.
// Degenerate inputs (empty or single element sequences, constant sequences)
// yield 0 rather than NaN.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MonthsPerYear is the number of monthly periods in a year.
const MonthsPerYear = 12

// Mean returns the arithmetic mean of xs, 0 for an empty sequence.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// SampleVariance returns Σ(x-mean)²/(n-1), 0 when n ≤ 1.
//
// A constant sequence has a variance of exactly 0.
func SampleVariance(xs []float64) float64 {
	if len(xs) <= 1 || constant(xs) {
		return 0
	}
	return stat.Variance(xs, nil)
}

// SampleStdDev returns the square root of SampleVariance.
func SampleStdDev(xs []float64) float64 {
	return math.Sqrt(SampleVariance(xs))
}

// SampleCovariance returns Σ(x-meanX)(y-meanY)/(n-1), 0 when n ≤ 1.
//
// It panics if xs and ys have different lengths.
func SampleCovariance(xs, ys []float64) float64 {
	if len(xs) != len(ys) {
		panic("stats: slice length mismatch")
	}
	if len(xs) <= 1 || constant(xs) || constant(ys) {
		return 0
	}
	return stat.Covariance(xs, ys, nil)
}

// Correlation returns the Pearson correlation of xs and ys, 0 when either
// standard deviation is 0.
func Correlation(xs, ys []float64) float64 {
	denom := SampleStdDev(xs) * SampleStdDev(ys)
	if denom == 0 {
		return 0
	}
	return SampleCovariance(xs, ys) / denom
}

// AnnualizeMean scales a monthly mean to a yearly basis.
func AnnualizeMean(monthly float64) float64 { return monthly * MonthsPerYear }

// AnnualizeVariance scales a monthly variance (or covariance) to a yearly basis.
func AnnualizeVariance(monthly float64) float64 { return monthly * MonthsPerYear }

// AnnualizeStdDev scales a monthly standard deviation to a yearly basis, assuming
// i.i.d. monthly returns.
func AnnualizeStdDev(monthly float64) float64 { return monthly * math.Sqrt(MonthsPerYear) }

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
