package riskreturn

import (
	"github.com/etnz/riskreturn/date"
	"github.com/etnz/riskreturn/stats"
)

// Market describes the benchmark returns over the CAPM window.
type Market struct {
	Symbol          string
	Periods         int
	MeanMonthly     float64
	MeanAnnual      float64
	VarianceMonthly float64
	VarianceAnnual  float64
}

// DescribeMarket computes the benchmark statistics used by the CAPM.
func DescribeMarket(symbol string, returns []float64) Market {
	mean := stats.Mean(returns)
	variance := stats.SampleVariance(returns)
	return Market{
		Symbol:          symbol,
		Periods:         len(returns),
		MeanMonthly:     mean,
		MeanAnnual:      stats.AnnualizeMean(mean),
		VarianceMonthly: variance,
		VarianceAnnual:  stats.AnnualizeVariance(variance),
	}
}

// CAPMEstimate is the beta of an asset against the benchmark and the annual
// return the model expects for it.
type CAPMEstimate struct {
	Symbol         string
	Periods        int
	Beta           float64
	ExpectedReturn float64
}

// CAPM gathers the estimates of every asset against one benchmark.
type CAPM struct {
	Market       Market
	RiskFreeRate float64
	Timeline     []date.Month // months common to the assets and the benchmark.
	Estimates    []CAPMEstimate
	// Failures holds, per asset, why no estimate could be computed.
	Failures map[string]error
}

// Estimate returns the estimate of symbol, if any.
func (c *CAPM) Estimate(symbol string) (CAPMEstimate, bool) {
	for _, e := range c.Estimates {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return CAPMEstimate{}, false
}

// EstimateCAPM computes the beta of asset returns against benchmark returns
// and the CAPM expected return rf + beta*(marketAnnualMean - rf).
//
// Both series are restricted to their most recent common number of periods.
// Beta uses the monthly benchmark variance, it fails with an
// *UndefinedBetaError when that variance is zero.
func EstimateCAPM(symbol string, asset []float64, benchmark string, market []float64, riskFreeRate float64) (CAPMEstimate, error) {
	n := min(len(asset), len(market))
	asset, market = asset[len(asset)-n:], market[len(market)-n:]

	variance := stats.SampleVariance(market)
	if variance == 0 {
		return CAPMEstimate{}, &UndefinedBetaError{Symbol: symbol, Benchmark: benchmark, Months: n}
	}
	beta := stats.SampleCovariance(asset, market) / variance
	marketAnnual := stats.AnnualizeMean(stats.Mean(market))
	return CAPMEstimate{
		Symbol:         symbol,
		Periods:        n,
		Beta:           beta,
		ExpectedReturn: riskFreeRate + beta*(marketAnnual-riskFreeRate),
	}, nil
}
