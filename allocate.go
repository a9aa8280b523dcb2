package riskreturn

import (
	"math"

	"github.com/shopspring/decimal"
)

// Allocation is the integer position bought for one asset.
type Allocation struct {
	Symbol   string
	Weight   float64
	Price    Money // latest price.
	Target   Money // budget * weight.
	Shares   int64
	Invested Money // Shares * Price.
}

// AllocationResult is the outcome of allocating a budget.
//
// Invested + Cash is exactly Budget.
type AllocationResult struct {
	Budget    Money
	Positions []Allocation
	Invested  Money
	Cash      Money
}

// Position returns the allocation of symbol, if any.
func (r *AllocationResult) Position(symbol string) (Allocation, bool) {
	for _, p := range r.Positions {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Allocation{}, false
}

// Allocate converts target weights into whole share counts at the latest
// prices: floor(budget * weight / price) for each symbol, independently. The
// rounding leftover of one asset is never spent on another one, it all ends
// up in Cash.
//
// Amounts are computed in decimal so that the accounting is exact. A missing,
// non-finite or non-positive price fails with an *InvalidPriceError, a missing
// or negative weight with an *InvalidWeightError.
func Allocate(budget Money, symbols []string, weights Weights, prices map[string]float64) (*AllocationResult, error) {
	res := &AllocationResult{
		Budget:   budget,
		Invested: M(0, budget.Currency()),
	}
	for _, s := range symbols {
		w, ok := weights[s]
		if !ok {
			return nil, &InvalidWeightError{Symbol: s, Reason: "no weight for this asset"}
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, &InvalidWeightError{Symbol: s, Weight: w, Reason: "want a finite non-negative weight"}
		}
		p := prices[s]
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return nil, &InvalidPriceError{Symbol: s, Price: p}
		}

		price := M(p, budget.Currency())
		target := budget.Decimal().Mul(decimal.NewFromFloat(w))
		shares, _ := target.QuoRem(price.Decimal(), 0)
		a := Allocation{
			Symbol:   s,
			Weight:   w,
			Price:    price,
			Target:   M(target, budget.Currency()),
			Shares:   shares.IntPart(),
			Invested: price.Mul(shares.IntPart()),
		}
		res.Positions = append(res.Positions, a)
		res.Invested = res.Invested.Add(a.Invested)
	}
	res.Cash = budget.Sub(res.Invested)
	return res, nil
}
