package riskreturn

import (
	"math"
	"slices"

	"github.com/etnz/riskreturn/date"
)

// Observation is one price of a symbol on a given day.
type Observation struct {
	Date  date.Date
	Price float64
}

// usable reports whether a price can reach the aligner: finite and non-negative.
func usable(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0
}

// Snapshot is the fixed input of an analysis: the daily price history of every
// asset and of the benchmark over a date range.
//
// A Snapshot is built once, with Add, and only read afterwards.
type Snapshot struct {
	rng       date.Range
	assets    []string
	benchmark string
	prices    map[string]*date.History[float64]
}

// NewSnapshot returns an empty snapshot for the given assets, in that order,
// and benchmark (possibly empty).
func NewSnapshot(r date.Range, assets []string, benchmark string) *Snapshot {
	s := &Snapshot{
		rng:       r,
		assets:    slices.Clone(assets),
		benchmark: benchmark,
		prices:    make(map[string]*date.History[float64]),
	}
	for _, a := range assets {
		s.prices[a] = new(date.History[float64])
	}
	if benchmark != "" {
		s.prices[benchmark] = new(date.History[float64])
	}
	return s
}

// Add records observations for a symbol. Non-finite and negative prices are
// dropped. It returns the number of observations kept.
func (s *Snapshot) Add(symbol string, obs ...Observation) int {
	h, ok := s.prices[symbol]
	if !ok {
		h = new(date.History[float64])
		s.prices[symbol] = h
	}
	kept := 0
	for _, o := range obs {
		if !usable(o.Price) {
			continue
		}
		h.Append(o.Date, o.Price)
		kept++
	}
	return kept
}

// Range returns the date range the snapshot was requested for.
func (s *Snapshot) Range() date.Range { return s.rng }

// Assets returns the asset symbols in their significant order.
func (s *Snapshot) Assets() []string { return slices.Clone(s.assets) }

// Benchmark returns the benchmark symbol, empty when there is none.
func (s *Snapshot) Benchmark() string { return s.benchmark }

// Prices returns the daily price history of a symbol, nil if unknown.
func (s *Snapshot) Prices(symbol string) *date.History[float64] { return s.prices[symbol] }

// symbols returns assets then benchmark.
func (s *Snapshot) symbols() []string {
	all := slices.Clone(s.assets)
	if s.benchmark != "" {
		all = append(all, s.benchmark)
	}
	return all
}
