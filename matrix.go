package riskreturn

import (
	"slices"

	"github.com/etnz/riskreturn/stats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a symmetric matrix indexed by symbols, like a covariance or a
// correlation matrix.
type Matrix struct {
	symbols []string
	index   map[string]int
	sym     *mat.SymDense
}

// NewMatrix returns a zero matrix over symbols.
func NewMatrix(symbols []string) *Matrix {
	m := &Matrix{
		symbols: slices.Clone(symbols),
		index:   make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		m.index[s] = i
	}
	if len(symbols) > 0 {
		m.sym = mat.NewSymDense(len(symbols), nil)
	}
	return m
}

// Symbols returns the row (and column) symbols in order.
func (m *Matrix) Symbols() []string { return slices.Clone(m.symbols) }

// Len returns the number of symbols.
func (m *Matrix) Len() int { return len(m.symbols) }

// At returns the element for the pair (a, b), and false if either is unknown.
func (m *Matrix) At(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.sym.At(i, j), true
}

// set sets both (a,b) and (b,a).
func (m *Matrix) set(a, b string, v float64) { m.sym.SetSym(m.index[a], m.index[b], v) }

// Scaled returns a copy of m with every element multiplied by f.
func (m *Matrix) Scaled(f float64) *Matrix {
	s := NewMatrix(m.symbols)
	if m.sym != nil {
		s.sym.ScaleSym(f, m.sym)
	}
	return s
}

// Annualized converts a matrix of monthly covariances into annual ones.
func (m *Matrix) Annualized() *Matrix { return m.Scaled(stats.MonthsPerYear) }

// Symmetric exposes the underlying gonum matrix, read-only.
func (m *Matrix) Symmetric() mat.Symmetric { return m.sym }

// CovarianceMatrix computes the sample covariance of returns for every pair
// of symbols, in the order of symbols. Every return vector must have the same
// length.
func CovarianceMatrix(symbols []string, returns map[string][]float64) *Matrix {
	return pairwise(symbols, returns, stats.SampleCovariance)
}

// CorrelationMatrix computes the correlation of returns for every pair of
// symbols. The diagonal is 1 except for constant returns where it is 0.
func CorrelationMatrix(symbols []string, returns map[string][]float64) *Matrix {
	return pairwise(symbols, returns, stats.Correlation)
}

func pairwise(symbols []string, returns map[string][]float64, f func(xs, ys []float64) float64) *Matrix {
	m := NewMatrix(symbols)
	for i, a := range symbols {
		for _, b := range symbols[i:] {
			m.set(a, b, f(returns[a], returns[b]))
		}
	}
	return m
}
