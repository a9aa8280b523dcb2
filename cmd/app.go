// Package cmd implements the subcommands of the rr CLI, a risk and return
// analysis of a portfolio of stocks.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/date"
	"github.com/etnz/riskreturn/eodhd"
	"github.com/etnz/riskreturn/yahoo"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "data")
	c.Register(&searchCmd{}, "data")

	c.Register(&reportCmd{}, "analysis")
	c.Register(&allocateCmd{}, "analysis")
	c.Register(&capmCmd{}, "analysis")
	c.Register(&chartCmd{}, "analysis")
	c.Register(&assistCmd{}, "analysis")

	c.Register(&topicCmd{}, "help")
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// Environment variables used when the matching flag is not set.
const (
	EnvAssets       = "RR_ASSETS"
	EnvBenchmark    = "RR_BENCHMARK"
	EnvBudget       = "RR_BUDGET"
	EnvCurrency     = "RR_CURRENCY"
	EnvYears        = "RR_YEARS"
	EnvRiskFree     = "RR_RISK_FREE"
	EnvWeights      = "RR_WEIGHTS"
	EnvSnapshot     = "RR_SNAPSHOT"
	EnvSource       = "RR_SOURCE"
	EnvEODHDAPIKey  = "EODHD_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	assetsFlag     = flag.String("assets", env(EnvAssets, strings.Join(riskreturn.DefaultAssets, ",")), "Comma separated `symbols` of the assets to analyze.")
	benchmarkFlag  = flag.String("benchmark", env(EnvBenchmark, riskreturn.DefaultBenchmark), "Market index `symbol` for the CAPM, empty to skip the CAPM.")
	budgetFlag     = flag.Float64("budget", envFloat(EnvBudget, riskreturn.DefaultBudget), "Amount to invest.")
	currencyFlag   = flag.String("currency", env(EnvCurrency, riskreturn.DefaultCurrency), "Currency `code` of the budget and the prices.")
	yearsFlag      = flag.Int("years", envInt(EnvYears, riskreturn.DefaultYears), "Number of years of history to analyze.")
	riskFreeFlag   = flag.Float64("risk-free", envFloat(EnvRiskFree, riskreturn.DefaultRiskFreeRate), "Annual risk-free `rate`, as a ratio (0.05 is 5%).")
	weightsFlag    = flag.String("weights", env(EnvWeights, ""), "Portfolio `weights` as SYMBOL=weight,... equal weights when empty.")
	minOverlapFlag = flag.Int("min-overlap", riskreturn.DefaultMinOverlapMonths, "Minimum number of common `months` before warning.")
	snapshotFlag   = flag.String("snapshot", env(EnvSnapshot, ""), "Snapshot `file` to analyze instead of fetching prices.")
	sourceFlag     = flag.String("source", env(EnvSource, "yahoo"), "Price source: yahoo or eodhd.")
	eodhdKeyFlag   = flag.String("eodhd-api-key", env(EnvEODHDAPIKey, ""), "EODHD API `key`, required by the eodhd source. You can get one at https://eodhd.com/")
	Verbose        = flag.Bool("v", false, "Log debug messages.")
)

// envErrs collects invalid environment values, reported by config().
var envErrs error

var loadDotEnv = sync.OnceFunc(func() { _ = godotenv.Load() })

// env returns the environment variable key, or fallback when unset.
// A .env file in the working directory is loaded first.
func env(key, fallback string) string {
	loadDotEnv()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := env(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		envErrs = errors.Join(envErrs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return f
}

func envInt(key string, fallback int) int {
	v := env(key, "")
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		envErrs = errors.Join(envErrs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return i
}

// explicit returns true if the analyzed assets were chosen by the user rather
// than defaulted.
func explicit() bool {
	set := env(EnvAssets, "") != ""
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "assets" || f.Name == "benchmark" {
			set = true
		}
	})
	return set
}

// config returns the analysis configuration from flags and environment.
func config() (riskreturn.Config, error) {
	if envErrs != nil {
		return riskreturn.Config{}, envErrs
	}
	weights, err := riskreturn.ParseWeights(*weightsFlag)
	if err != nil {
		return riskreturn.Config{}, fmt.Errorf("invalid -weights: %w", err)
	}
	cfg := riskreturn.Config{
		Assets:           riskreturn.ParseAssets(*assetsFlag),
		Benchmark:        strings.TrimSpace(*benchmarkFlag),
		Budget:           *budgetFlag,
		Currency:         *currencyFlag,
		Years:            *yearsFlag,
		RiskFreeRate:     *riskFreeFlag,
		Weights:          weights,
		MinOverlapMonths: *minOverlapFlag,
	}
	return cfg, nil
}

// logger returns the console logger on stderr.
func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// source returns the price source selected by -source.
func source(log zerolog.Logger) (riskreturn.PriceSource, error) {
	switch *sourceFlag {
	case "yahoo":
		return yahoo.New(log), nil
	case "eodhd":
		if *eodhdKeyFlag == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", EnvEODHDAPIKey)
		}
		return eodhd.New(*eodhdKeyFlag, log), nil
	default:
		return nil, fmt.Errorf("unknown price source %q, want yahoo or eodhd", *sourceFlag)
	}
}

// fetch downloads the prices of the configured assets and benchmark.
func fetch(ctx context.Context, cfg riskreturn.Config, log zerolog.Logger) (*riskreturn.Snapshot, error) {
	src, err := source(log)
	if err != nil {
		return nil, err
	}
	r := riskreturn.AnalysisRange(date.Today(), cfg.Years)
	log.Info().Str("source", *sourceFlag).Stringer("range", r).Msg("fetching prices")
	return riskreturn.Fetch(ctx, src, cfg.Assets, cfg.Benchmark, r)
}

// analyze runs the analysis of the -snapshot file, or of fresh prices when
// there is none.
//
// A snapshot brings its own assets and benchmark, unless they were set
// explicitly.
func analyze(ctx context.Context) (*riskreturn.Analysis, error) {
	cfg, err := config()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger()

	var snap *riskreturn.Snapshot
	if *snapshotFlag != "" {
		if snap, err = riskreturn.LoadSnapshot(*snapshotFlag); err != nil {
			return nil, err
		}
		if !explicit() {
			cfg.Assets, cfg.Benchmark = snap.Assets(), snap.Benchmark()
		}
	} else if snap, err = fetch(ctx, cfg, log); err != nil {
		return nil, err
	}
	return riskreturn.NewEngine(log).Analyze(snap, cfg)
}
