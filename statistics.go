package riskreturn

import "github.com/etnz/riskreturn/stats"

// AssetStatistics summarizes the returns of an asset on a monthly and on an
// annual basis.
type AssetStatistics struct {
	Symbol        string
	Periods       int // number of monthly returns.
	MeanMonthly   float64
	MeanAnnual    float64
	StdDevMonthly float64
	StdDevAnnual  float64
}

// Describe computes the statistics of a monthly return series.
func Describe(symbol string, returns []float64) AssetStatistics {
	mean := stats.Mean(returns)
	std := stats.SampleStdDev(returns)
	return AssetStatistics{
		Symbol:        symbol,
		Periods:       len(returns),
		MeanMonthly:   mean,
		MeanAnnual:    stats.AnnualizeMean(mean),
		StdDevMonthly: std,
		StdDevAnnual:  stats.AnnualizeStdDev(std),
	}
}
