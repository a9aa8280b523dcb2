package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/riskreturn"
)

// Report is the view of an analysis, with every value formatted for display.
type Report struct {
	From, To  string // first and last month of the timeline
	Months    int
	Assets    []string
	Benchmark string
	Currency  string

	Prices      []PriceRow
	Statistics  []StatisticsRow
	Correlation []MatrixRow // monthly basis
	Covariance  []MatrixRow // annual basis
	Portfolio   *PortfolioView
	Allocation  *AllocationView
	CAPM        *CAPMView

	Warnings []string
	Failures []Failure
}

// PriceRow is the latest price and the return over the timeline of an asset.
type PriceRow struct {
	Symbol       string
	Latest       string
	PeriodReturn string
}

// StatisticsRow holds the return statistics of an asset.
type StatisticsRow struct {
	Symbol        string
	MeanMonthly   string
	MeanAnnual    string
	StdDevMonthly string
	StdDevAnnual  string
}

// MatrixRow is one row of a symmetric matrix.
type MatrixRow struct {
	Symbol string
	Values []string
}

type PortfolioView struct {
	Weights        []WeightRow
	PeriodReturn   string
	ExpectedReturn string
	Volatility     string
	Variance       string
}

type WeightRow struct {
	Symbol string
	Weight string
}

type AllocationView struct {
	Budget   string
	Rows     []AllocationRow
	Invested string
	Cash     string
}

type AllocationRow struct {
	Symbol   string
	Weight   string
	Price    string
	Target   string
	Shares   int64
	Invested string
}

type CAPMView struct {
	Benchmark      string
	Months         int
	RiskFreeRate   string
	MarketMean     string
	MarketVariance string
	Rows           []CAPMRow
	Failures       []string
}

type CAPMRow struct {
	Symbol         string
	Beta           string
	ExpectedReturn string
}

// Failure is a stage that could not complete.
type Failure struct {
	Stage string
	Error string
}

func pct(ratio float64) string { return riskreturn.Pct(ratio).String() }

// oneLine returns the message of err on a single line, joined errors are
// separated by semicolons.
func oneLine(err error) string { return strings.ReplaceAll(err.Error(), "\n", "; ") }

func num(v float64) string { return fmt.Sprintf("%.4f", v) }

// NewReport builds the view of an analysis.
func NewReport(a *riskreturn.Analysis) *Report {
	cur := a.Config.Currency
	r := &Report{
		Months:    len(a.Timeline),
		Assets:    slices.Clone(a.Assets),
		Benchmark: a.Benchmark,
		Currency:  cur,
	}
	if labels := a.Labels(); len(labels) > 0 {
		r.From, r.To = labels[0], labels[len(labels)-1]
	}

	for _, s := range a.Assets {
		r.Prices = append(r.Prices, PriceRow{
			Symbol:       s,
			Latest:       riskreturn.M(a.LatestPrices[s], cur).String(),
			PeriodReturn: riskreturn.Pct(a.PeriodReturns[s]).SignedString(),
		})
	}
	for _, s := range a.Statistics {
		r.Statistics = append(r.Statistics, StatisticsRow{
			Symbol:        s.Symbol,
			MeanMonthly:   pct(s.MeanMonthly),
			MeanAnnual:    pct(s.MeanAnnual),
			StdDevMonthly: pct(s.StdDevMonthly),
			StdDevAnnual:  pct(s.StdDevAnnual),
		})
	}
	r.Correlation = matrixRows(a.Correlation)
	r.Covariance = matrixRows(a.Covariance)

	if p := a.Portfolio; p != nil {
		v := &PortfolioView{
			PeriodReturn:   riskreturn.Pct(a.PortfolioPeriodReturn).SignedString(),
			ExpectedReturn: pct(p.ExpectedReturn),
			Volatility:     pct(p.Volatility),
			Variance:       num(p.Variance),
		}
		for _, s := range a.Assets {
			v.Weights = append(v.Weights, WeightRow{Symbol: s, Weight: pct(p.Weights[s])})
		}
		r.Portfolio = v
	}

	if al := a.Allocation; al != nil {
		r.Allocation = newAllocationView(al)
	}
	if c := a.CAPM; c != nil {
		r.CAPM = newCAPMView(c, a.Assets)
	}

	for _, w := range a.Warnings {
		r.Warnings = append(r.Warnings, oneLine(w))
	}
	for _, stage := range riskreturn.Stages {
		if err := a.Failed(stage); err != nil {
			r.Failures = append(r.Failures, Failure{Stage: string(stage), Error: oneLine(err)})
		}
	}
	return r
}

func newAllocationView(al *riskreturn.AllocationResult) *AllocationView {
	v := &AllocationView{
		Budget:   al.Budget.String(),
		Invested: al.Invested.String(),
		Cash:     al.Cash.String(),
	}
	for _, p := range al.Positions {
		v.Rows = append(v.Rows, AllocationRow{
			Symbol:   p.Symbol,
			Weight:   pct(p.Weight),
			Price:    p.Price.String(),
			Target:   p.Target.String(),
			Shares:   p.Shares,
			Invested: p.Invested.String(),
		})
	}
	return v
}

func newCAPMView(c *riskreturn.CAPM, assets []string) *CAPMView {
	v := &CAPMView{
		Benchmark:      c.Market.Symbol,
		Months:         len(c.Timeline),
		RiskFreeRate:   pct(c.RiskFreeRate),
		MarketMean:     pct(c.Market.MeanAnnual),
		MarketVariance: num(c.Market.VarianceAnnual),
	}
	for _, s := range assets {
		if e, ok := c.Estimate(s); ok {
			v.Rows = append(v.Rows, CAPMRow{Symbol: s, Beta: fmt.Sprintf("%.3f", e.Beta), ExpectedReturn: pct(e.ExpectedReturn)})
		}
		if err, ok := c.Failures[s]; ok {
			v.Failures = append(v.Failures, oneLine(err))
		}
	}
	return v
}

func matrixRows(m *riskreturn.Matrix) []MatrixRow {
	if m == nil {
		return nil
	}
	symbols := m.Symbols()
	rows := make([]MatrixRow, len(symbols))
	for i, a := range symbols {
		rows[i].Symbol = a
		for _, b := range symbols {
			v, _ := m.At(a, b)
			rows[i].Values = append(rows[i].Values, num(v))
		}
	}
	return rows
}
