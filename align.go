package riskreturn

import (
	"slices"

	"github.com/etnz/riskreturn/date"
)

// MonthlySeries is the price of a symbol at the end of each month it has
// observations for, in increasing month order.
type MonthlySeries struct {
	Symbol string
	Months []date.Month
	Prices []float64
}

// Monthly collapses a daily history into a MonthlySeries, keeping for each
// month the price of the chronologically last observation.
func Monthly(symbol string, h *date.History[float64]) MonthlySeries {
	months, prices := h.LastOfMonth()
	return MonthlySeries{Symbol: symbol, Months: months, Prices: prices}
}

// Len returns the number of months in the series.
func (s MonthlySeries) Len() int { return len(s.Months) }

// Aligned holds prices of several symbols on a common monthly timeline.
//
// Prices[symbol][i] is the month-end price of symbol on Timeline[i].
type Aligned struct {
	Symbols  []string
	Timeline []date.Month
	Prices   map[string][]float64
}

// Align computes the timeline made of the months present in every series,
// sorted in increasing order, and the price vector of each series on it.
//
// A series without any month fails with a *MissingDataError. Disjoint series
// produce an empty timeline, it is up to the caller to decide whether the
// overlap is enough (see CheckOverlap).
func Align(series ...MonthlySeries) (*Aligned, error) {
	count := make(map[date.Month]int)
	for _, s := range series {
		if s.Len() == 0 {
			return nil, &MissingDataError{Symbol: s.Symbol, Role: "asset"}
		}
		for _, m := range s.Months {
			count[m]++
		}
	}

	// Collect from the first series to avoid depending on map iteration order.
	var timeline []date.Month
	if len(series) > 0 {
		for _, m := range series[0].Months {
			if count[m] == len(series) {
				timeline = append(timeline, m)
			}
		}
	}
	slices.SortFunc(timeline, date.Month.Compare)
	timeline = slices.Compact(timeline)

	a := &Aligned{
		Timeline: timeline,
		Prices:   make(map[string][]float64, len(series)),
	}
	for _, s := range series {
		byMonth := make(map[date.Month]float64, s.Len())
		for i, m := range s.Months {
			byMonth[m] = s.Prices[i]
		}
		prices := make([]float64, len(timeline))
		for i, m := range timeline {
			prices[i] = byMonth[m]
		}
		a.Symbols = append(a.Symbols, s.Symbol)
		a.Prices[s.Symbol] = prices
	}
	return a, nil
}

// Len returns the number of months in the common timeline.
func (a *Aligned) Len() int { return len(a.Timeline) }

// CheckOverlap returns an *InsufficientOverlapError when the timeline has
// fewer than minMonths months, nil otherwise.
func (a *Aligned) CheckOverlap(scope string, minMonths int) error {
	if a.Len() < minMonths {
		return &InsufficientOverlapError{Scope: scope, Months: a.Len(), Min: minMonths}
	}
	return nil
}

// Latest returns the last aligned price of a symbol, 0 on an empty timeline.
func (a *Aligned) Latest(symbol string) float64 {
	prices := a.Prices[symbol]
	if len(prices) == 0 {
		return 0
	}
	return prices[len(prices)-1]
}

// Labels returns the timeline as "YYYY-MM" labels.
func (a *Aligned) Labels() []string {
	labels := make([]string, len(a.Timeline))
	for i, m := range a.Timeline {
		labels[i] = m.String()
	}
	return labels
}
