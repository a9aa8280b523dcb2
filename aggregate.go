package riskreturn

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Weights maps each asset symbol to its target weight in the portfolio.
type Weights map[string]float64

// weightTolerance is how far from 1 the sum of weights may be.
const weightTolerance = 1e-6

// EqualWeights returns 1/N for each of the N symbols.
func EqualWeights(symbols []string) Weights {
	w := make(Weights, len(symbols))
	for _, s := range symbols {
		w[s] = 1 / float64(len(symbols))
	}
	return w
}

// Vector returns the weights in the order of symbols.
// A symbol without weight fails with an *InvalidWeightError.
func (w Weights) Vector(symbols []string) ([]float64, error) {
	v := make([]float64, len(symbols))
	for i, s := range symbols {
		x, ok := w[s]
		if !ok {
			return nil, &InvalidWeightError{Symbol: s, Reason: "no weight for this asset"}
		}
		v[i] = x
	}
	return v, nil
}

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	sum := 0.0
	for _, s := range w.symbols() {
		sum += w[s]
	}
	return sum
}

// symbols returns the weighted symbols sorted, so that sums do not depend on
// map iteration order.
func (w Weights) symbols() []string {
	symbols := make([]string, 0, len(w))
	for s := range w {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// String returns weights as "SYMBOL=w,SYMBOL=w", the format read by ParseWeights.
func (w Weights) String() string {
	items := make([]string, 0, len(w))
	for _, s := range w.symbols() {
		items = append(items, fmt.Sprintf("%s=%g", s, w[s]))
	}
	return strings.Join(items, ",")
}

// check validates a long-only fully invested weight vector for assets.
func (w Weights) check(assets []string) error {
	if _, err := w.Vector(assets); err != nil {
		return err
	}
	for _, s := range w.symbols() {
		x := w[s]
		if !slices.Contains(assets, s) {
			return &InvalidWeightError{Symbol: s, Weight: x, Reason: "not an analyzed asset"}
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return &InvalidWeightError{Symbol: s, Weight: x, Reason: "want a finite non-negative weight"}
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights sum to %g, want 1", sum)
	}
	return nil
}

// VarianceTolerance is the magnitude under which a negative portfolio variance
// is considered floating point noise and clamped to 0.
const VarianceTolerance = 1e-12

// PortfolioState is the expected annual return and risk of a weighted
// portfolio.
type PortfolioState struct {
	Weights        Weights
	ExpectedReturn float64 // annual
	Variance       float64 // annual
	Volatility     float64 // annual
}

// Aggregate combines annual mean returns and the annual covariance matrix of
// the symbols into the portfolio's expected return and volatility.
//
// The variance is the full quadratic form w'Σw, every cross term is counted
// for both (i,j) and (j,i). Weights are used as given, neither their sign nor
// their sum is checked.
func Aggregate(symbols []string, weights Weights, meanAnnual map[string]float64, cov *Matrix) (PortfolioState, error) {
	ws, err := weights.Vector(symbols)
	if err != nil {
		return PortfolioState{}, err
	}
	if cov == nil || cov.Len() != len(symbols) {
		return PortfolioState{}, fmt.Errorf("covariance matrix does not match the %d assets", len(symbols))
	}
	if len(symbols) == 0 {
		return PortfolioState{Weights: weights}, nil
	}

	// reorder the covariance to the symbols order.
	sigma := mat.NewSymDense(len(symbols), nil)
	expected := 0.0
	for i, a := range symbols {
		expected += ws[i] * meanAnnual[a]
		for j := i; j < len(symbols); j++ {
			c, ok := cov.At(a, symbols[j])
			if !ok {
				return PortfolioState{}, fmt.Errorf("covariance matrix has no entry for (%s, %s)", a, symbols[j])
			}
			sigma.SetSym(i, j, c)
		}
	}
	w := mat.NewVecDense(len(ws), ws)
	variance := mat.Inner(w, sigma, w)

	if variance < 0 {
		if variance < -VarianceTolerance {
			return PortfolioState{}, fmt.Errorf("%w: %g exceeds tolerance %g, the covariance matrix is not positive semi-definite", ErrNegativeVariance, variance, VarianceTolerance)
		}
		variance = 0
	}
	return PortfolioState{
		Weights:        weights,
		ExpectedReturn: expected,
		Variance:       variance,
		Volatility:     math.Sqrt(variance),
	}, nil
}
