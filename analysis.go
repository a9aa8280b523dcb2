package riskreturn

import (
	"errors"
	"fmt"

	"github.com/etnz/riskreturn/date"
	"github.com/rs/zerolog"
)

// Stage identifies a step of the analysis pipeline.
type Stage string

const (
	StageAlignment  Stage = "alignment"
	StageReturns    Stage = "returns"
	StageStatistics Stage = "statistics"
	StagePortfolio  Stage = "portfolio"
	StageCAPM       Stage = "capm"
	StageAllocation Stage = "allocation"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{StageAlignment, StageReturns, StageStatistics, StagePortfolio, StageCAPM, StageAllocation}

// Analysis is the result of an analysis run. It is never modified once
// returned by Analyze.
type Analysis struct {
	Config    Config
	Range     date.Range
	Assets    []string
	Benchmark string

	// Timeline is the list of months common to every asset.
	Timeline []date.Month
	// Prices are the month-end prices of each asset on Timeline.
	Prices map[string][]float64
	// Returns are the monthly returns of each asset, one less than Timeline.
	Returns map[string][]float64

	LatestPrices          map[string]float64
	PeriodReturns         map[string]float64
	PortfolioPeriodReturn float64

	Statistics  []AssetStatistics // in Assets order.
	Covariance  *Matrix           // annual basis.
	Correlation *Matrix           // monthly basis.

	// Portfolio, CAPM and Allocation are nil when their stage failed or, for
	// CAPM, when there is no benchmark.
	Portfolio  *PortfolioState
	CAPM       *CAPM
	Allocation *AllocationResult

	// Warnings are non fatal conditions, like an *InsufficientOverlapError.
	Warnings []error
	// Failures records why a stage could not complete.
	Failures map[Stage]error
}

// Failed returns the error of a stage, nil if it succeeded.
func (a *Analysis) Failed(stage Stage) error { return a.Failures[stage] }

// Labels returns the timeline as "YYYY-MM" labels.
func (a *Analysis) Labels() []string {
	labels := make([]string, len(a.Timeline))
	for i, m := range a.Timeline {
		labels[i] = m.String()
	}
	return labels
}

// Statistic returns the statistics of symbol.
func (a *Analysis) Statistic(symbol string) (AssetStatistics, bool) {
	for _, s := range a.Statistics {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return AssetStatistics{}, false
}

// NormalizedPrices returns the prices of symbol rebased to 1 on the first month.
func (a *Analysis) NormalizedPrices(symbol string) []float64 {
	return NormalizedPrices(a.Prices[symbol])
}

// CumulativeReturns returns the compounded returns of symbol since the first month.
func (a *Analysis) CumulativeReturns(symbol string) []float64 {
	return CumulativeReturns(a.Returns[symbol])
}

// Engine runs analyses. It holds no state between runs, the same Engine can
// analyze several snapshots concurrently.
type Engine struct {
	log zerolog.Logger
}

// NewEngine returns an Engine logging into log.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "analytics").Logger()}
}

// Analyze runs the whole pipeline on a snapshot.
//
// It fails only when the configuration is invalid or some input has no usable
// price (*MissingDataError). Failures of the portfolio, CAPM and allocation
// stages are recorded in Analysis.Failures and do not affect the other
// stages.
func (e *Engine) Analyze(snap *Snapshot, cfg Config) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, symbol := range cfg.Assets {
		if snap.Prices(symbol).Len() == 0 {
			return nil, &MissingDataError{Symbol: symbol, Role: "asset"}
		}
	}
	if cfg.Benchmark != "" && snap.Prices(cfg.Benchmark).Len() == 0 {
		return nil, &MissingDataError{Symbol: cfg.Benchmark, Role: "benchmark"}
	}

	a := &Analysis{
		Config:        cfg,
		Range:         snap.Range(),
		Assets:        cfg.Assets,
		Benchmark:     cfg.Benchmark,
		Prices:        make(map[string][]float64),
		Returns:       make(map[string][]float64),
		LatestPrices:  make(map[string]float64),
		PeriodReturns: make(map[string]float64),
		Failures:      make(map[Stage]error),
	}
	weights := cfg.weights()

	// alignment
	series := make([]MonthlySeries, len(cfg.Assets))
	for i, symbol := range cfg.Assets {
		series[i] = Monthly(symbol, snap.Prices(symbol))
	}
	aligned, err := Align(series...)
	if err != nil {
		return nil, err
	}
	a.Timeline = aligned.Timeline
	e.checkOverlap(a, aligned, "assets", cfg.minOverlap())
	e.log.Debug().Int("months", aligned.Len()).Strs("assets", cfg.Assets).Msg("assets aligned")

	// returns
	for _, symbol := range cfg.Assets {
		prices := aligned.Prices[symbol]
		a.Prices[symbol] = prices
		a.Returns[symbol] = Returns(prices)
		a.LatestPrices[symbol] = aligned.Latest(symbol)
		a.PeriodReturns[symbol] = PeriodReturn(prices)
		a.PortfolioPeriodReturn += weights[symbol] * a.PeriodReturns[symbol]
	}

	// statistics
	meanAnnual := make(map[string]float64, len(cfg.Assets))
	for _, symbol := range cfg.Assets {
		s := Describe(symbol, a.Returns[symbol])
		a.Statistics = append(a.Statistics, s)
		meanAnnual[symbol] = s.MeanAnnual
	}
	a.Covariance = CovarianceMatrix(cfg.Assets, a.Returns).Annualized()
	a.Correlation = CorrelationMatrix(cfg.Assets, a.Returns)

	// portfolio
	if p, err := Aggregate(cfg.Assets, weights, meanAnnual, a.Covariance); err != nil {
		e.fail(a, StagePortfolio, err)
	} else {
		a.Portfolio = &p
	}

	// capm
	if cfg.Benchmark != "" {
		if c, err := e.capm(a, snap, series, cfg); err != nil {
			e.fail(a, StageCAPM, err)
		} else {
			a.CAPM = c
		}
	}

	// allocation
	if r, err := Allocate(M(cfg.Budget, cfg.Currency), cfg.Assets, weights, a.LatestPrices); err != nil {
		e.fail(a, StageAllocation, err)
	} else {
		a.Allocation = r
	}

	e.log.Info().
		Int("months", len(a.Timeline)).
		Int("warnings", len(a.Warnings)).
		Int("failures", len(a.Failures)).
		Msg("analysis complete")
	return a, nil
}

// capm aligns the benchmark with the assets on their common months and
// estimates every asset against it.
func (e *Engine) capm(a *Analysis, snap *Snapshot, assets []MonthlySeries, cfg Config) (*CAPM, error) {
	series := append(assets[:len(assets):len(assets)], Monthly(cfg.Benchmark, snap.Prices(cfg.Benchmark)))
	aligned, err := Align(series...)
	if err != nil {
		return nil, err
	}
	e.checkOverlap(a, aligned, "benchmark", cfg.minOverlap())

	market := Returns(aligned.Prices[cfg.Benchmark])
	c := &CAPM{
		Market:       DescribeMarket(cfg.Benchmark, market),
		RiskFreeRate: cfg.RiskFreeRate,
		Timeline:     aligned.Timeline,
		Failures:     make(map[string]error),
	}
	var errs error
	for _, symbol := range cfg.Assets {
		est, err := EstimateCAPM(symbol, Returns(aligned.Prices[symbol]), cfg.Benchmark, market, cfg.RiskFreeRate)
		if err != nil {
			c.Failures[symbol] = err
			errs = errors.Join(errs, err)
			continue
		}
		c.Estimates = append(c.Estimates, est)
	}
	if len(c.Estimates) == 0 {
		return nil, errs
	}
	return c, nil
}

func (e *Engine) checkOverlap(a *Analysis, aligned *Aligned, scope string, minMonths int) {
	if err := aligned.CheckOverlap(scope, minMonths); err != nil {
		e.log.Warn().Str("scope", scope).Int("months", aligned.Len()).Int("min_months", minMonths).Msg("insufficient overlap")
		a.Warnings = append(a.Warnings, err)
	}
}

func (e *Engine) fail(a *Analysis, stage Stage, err error) {
	e.log.Error().Err(err).Str("stage", string(stage)).Msg("stage failed")
	a.Failures[stage] = err
}
