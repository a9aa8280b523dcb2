package riskreturn

import (
	"errors"
	"fmt"
)

// MissingDataError reports an asset or a benchmark without any usable price
// observation. No statistics can be computed, it aborts the analysis.
type MissingDataError struct {
	Symbol string
	Role   string // "asset" or "benchmark"
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s %q has no usable price observation", e.Role, e.Symbol)
}

// InsufficientOverlapError is a soft failure: the aligned timeline has fewer
// months than required for reliable statistics. The analysis proceeds, it is
// recorded as a warning.
type InsufficientOverlapError struct {
	Scope  string // what was aligned, e.g. "assets" or "benchmark"
	Months int
	Min    int
}

func (e *InsufficientOverlapError) Error() string {
	return fmt.Sprintf("insufficient overlap: only %d common months for %s (want at least %d), statistics are unreliable", e.Months, e.Scope, e.Min)
}

// UndefinedBetaError reports a benchmark whose return variance is zero over the
// comparison window. It fails the CAPM stage only.
type UndefinedBetaError struct {
	Symbol    string
	Benchmark string
	Months    int
}

func (e *UndefinedBetaError) Error() string {
	return fmt.Sprintf("capm: beta of %q is undefined, benchmark %q has zero return variance over %d periods", e.Symbol, e.Benchmark, e.Months)
}

// InvalidPriceError reports a non-positive latest price passed to the
// allocator. It fails the allocation stage only.
type InvalidPriceError struct {
	Symbol string
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("allocation: invalid price %v for %q, want a positive price", e.Price, e.Symbol)
}

// InvalidWeightError reports a weight vector that cannot be applied to the
// asset list.
type InvalidWeightError struct {
	Symbol string
	Weight float64
	Reason string
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight %v for %q: %s", e.Weight, e.Symbol, e.Reason)
}

// ErrNegativeVariance is returned when the portfolio variance is negative beyond
// VarianceTolerance, which happens on a numerically invalid covariance matrix.
var ErrNegativeVariance = errors.New("negative portfolio variance")
