// Package riskreturn computes risk and return statistics and a Capital Asset
// Pricing Model (CAPM) estimate for a multi-asset portfolio, from historical
// monthly price series, and converts target weights into integer share
// allocations under a fixed budget.
//
// The engine is a pipeline of pure transformations over an immutable Snapshot:
//   - Temporal alignment: daily observations collapse into one price per
//     calendar month (the last one), then months common to every asset form
//     the aligned timeline.
//   - Returns: simple period-over-period returns on the aligned prices.
//   - Statistics: sample mean, standard deviation, covariance and correlation
//     (see package stats), annualized for reporting.
//   - Portfolio aggregation: expected return and volatility of a weighted
//     portfolio through the full quadratic form over the covariance matrix.
//   - CAPM: single factor beta against a benchmark and the model-implied
//     expected return for a given risk-free rate.
//   - Allocation: integer share counts at the latest price, with exact
//     accounting of the invested amount and the remaining cash.
//
// A failure in a late stage (CAPM, allocation) does not invalidate the earlier
// ones: Analyze returns partial results and records which stage failed.
//
// This package serves as the foundational logic for the `rr` command-line
// tool. Price retrieval lives behind the PriceSource interface (see packages
// eodhd and yahoo) and presentation in packages renderer and chart.
package riskreturn
