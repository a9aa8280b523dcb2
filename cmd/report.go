package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/riskreturn/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full risk and return report" }
func (*reportCmd) Usage() string {
	return `rr report

  Analyzes the assets and displays prices, returns, statistics, correlations,
  the portfolio risk, the allocation of the budget and the CAPM estimates.

  Prices come from the -snapshot file, or are fetched from the -source.
`
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (*reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return render(ctx, renderer.RenderReport)
}

type allocateCmd struct{}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "display how many shares to buy with the budget" }
func (*allocateCmd) Usage() string {
	return `rr allocate [-budget <amount>] [-weights <SYMBOL=weight,...>]

  Splits the budget between the assets according to the weights, and buys
  whole shares at the latest price. The rest is kept as cash.
`
}

func (*allocateCmd) SetFlags(f *flag.FlagSet) {}

func (*allocateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return render(ctx, renderer.RenderAllocation)
}

type capmCmd struct{}

func (*capmCmd) Name() string     { return "capm" }
func (*capmCmd) Synopsis() string { return "display the beta and expected return of each asset" }
func (*capmCmd) Usage() string {
	return `rr capm [-benchmark <symbol>] [-risk-free <rate>]

  Estimates the beta of each asset against the benchmark, and its expected
  annual return according to the Capital Asset Pricing Model.
`
}

func (*capmCmd) SetFlags(f *flag.FlagSet) {}

func (*capmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *benchmarkFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: a -benchmark is required.")
		return subcommands.ExitUsageError
	}
	return render(ctx, renderer.RenderCAPM)
}

// render analyzes and prints a markdown view of the analysis.
func render(ctx context.Context, view func(*renderer.Report) string) subcommands.ExitStatus {
	a, err := analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// failed stages are part of the report.
	printMarkdown(view(renderer.NewReport(a)))
	return subcommands.ExitSuccess
}
