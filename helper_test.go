package riskreturn

import (
	"time"

	"github.com/etnz/riskreturn/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// tolerance used to compare computed floats.
const tolerance = 1e-9

// approx compares floats, and slices of them, with tolerance.
var approx = cmpopts.EquateApprox(0, tolerance)

// BRL is a helper for test to create money from const.
func BRL(v float64) Money { return M(v, "BRL") }

// monthly returns one observation per month, starting on 'from', on the last
// day of the month.
func monthly(from date.Month, prices ...float64) []Observation {
	obs := make([]Observation, len(prices))
	for i, p := range prices {
		m := date.NewMonth(from.Year, from.Month+time.Month(i))
		obs[i] = Observation{Date: m.Last(), Price: p}
	}
	return obs
}

// analysisOptions compares two analyses, matrices by value.
var analysisOptions = cmp.Options{
	cmp.AllowUnexported(date.Date{}),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b *Matrix) bool {
		if a == nil || b == nil {
			return a == b
		}
		if !cmp.Equal(a.Symbols(), b.Symbols()) {
			return false
		}
		for _, x := range a.Symbols() {
			for _, y := range a.Symbols() {
				u, _ := a.At(x, y)
				v, _ := b.At(x, y)
				if u != v {
					return false
				}
			}
		}
		return true
	}),
}
