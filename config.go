package riskreturn

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Default configuration reproduces the historical analysis this tool was written for:
// three Brazilian stocks against the Ibovespa.
var (
	DefaultAssets    = []string{"BBAS3.SA", "PETR4.SA", "VALE3.SA"}
	DefaultBenchmark = "^BVSP"
)

const (
	DefaultBudget           = 100_000.00
	DefaultCurrency         = "BRL"
	DefaultYears            = 4
	DefaultRiskFreeRate     = 0.05
	DefaultMinOverlapMonths = 12
)

// Config holds the parameters of an analysis.
type Config struct {
	Assets           []string // order-significant, it defines the order of every output.
	Benchmark        string   // market index for CAPM, CAPM is skipped when empty.
	Budget           float64  // total amount to allocate.
	Currency         string   // ISO 4217 code of the budget and prices.
	Years            int      // length of the analysis window.
	RiskFreeRate     float64  // annual, may be negative.
	Weights          Weights  // target weights, nil means equal weighting.
	MinOverlapMonths int      // below this many common months a warning is emitted.
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Assets:           slices.Clone(DefaultAssets),
		Benchmark:        DefaultBenchmark,
		Budget:           DefaultBudget,
		Currency:         DefaultCurrency,
		Years:            DefaultYears,
		RiskFreeRate:     DefaultRiskFreeRate,
		MinOverlapMonths: DefaultMinOverlapMonths,
	}
}

// Validate checks the configuration consistency.
func (c Config) Validate() error {
	var errs error
	if len(c.Assets) == 0 {
		errs = errors.Join(errs, errors.New("no asset to analyze"))
	}
	seen := make(map[string]bool)
	for _, a := range c.Assets {
		if strings.TrimSpace(a) == "" {
			errs = errors.Join(errs, errors.New("empty asset symbol"))
			continue
		}
		if seen[a] {
			errs = errors.Join(errs, fmt.Errorf("duplicate asset %q", a))
		}
		seen[a] = true
	}
	if c.Benchmark != "" && seen[c.Benchmark] {
		errs = errors.Join(errs, fmt.Errorf("benchmark %q is also an asset", c.Benchmark))
	}
	if !(c.Budget > 0) || math.IsInf(c.Budget, 0) {
		errs = errors.Join(errs, fmt.Errorf("invalid budget %v, want a positive amount", c.Budget))
	}
	if c.Years <= 0 {
		errs = errors.Join(errs, fmt.Errorf("invalid window of %d years", c.Years))
	}
	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		errs = errors.Join(errs, fmt.Errorf("invalid risk-free rate %v", c.RiskFreeRate))
	}
	if c.Weights != nil {
		if err := c.Weights.check(c.Assets); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// weights returns the configured weights or equal weights.
func (c Config) weights() Weights {
	if c.Weights == nil {
		return EqualWeights(c.Assets)
	}
	return c.Weights
}

func (c Config) minOverlap() int {
	if c.MinOverlapMonths <= 0 {
		return DefaultMinOverlapMonths
	}
	return c.MinOverlapMonths
}

// ParseAssets parses a comma separated list of symbols.
func ParseAssets(s string) []string {
	var assets []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			assets = append(assets, a)
		}
	}
	return assets
}

// ParseWeights parses weights as "SYMBOL=0.5,SYMBOL=0.5". An empty string
// returns nil weights, that is equal weighting.
func ParseWeights(s string) (Weights, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	w := make(Weights)
	for _, item := range strings.Split(s, ",") {
		symbol, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q want format SYMBOL=weight", item)
		}
		symbol = strings.TrimSpace(symbol)
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %q: %w", symbol, err)
		}
		if _, dup := w[symbol]; dup {
			return nil, fmt.Errorf("duplicate weight for %q", symbol)
		}
		w[symbol] = f
	}
	return w, nil
}
