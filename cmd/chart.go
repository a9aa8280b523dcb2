package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/riskreturn"
	"github.com/etnz/riskreturn/chart"
	"github.com/google/subcommands"
)

type chartCmd struct {
	kind   string
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the asset prices or returns as a PNG image" }
func (*chartCmd) Usage() string {
	return `rr chart [-kind prices|returns] [-o <file>]

  Draws a line per asset over the analyzed months:
    prices:  the price rebased to 1 on the first month.
    returns: the cumulative return since the first month.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "prices", "Chart to draw: prices or returns.")
	f.StringVar(&c.output, "o", "", "PNG `file` to write, defaults to <kind>.png.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var draw func(*riskreturn.Analysis) ([]byte, error)
	switch c.kind {
	case "prices":
		draw = chart.NormalizedPrices
	case "returns":
		draw = chart.CumulativeReturns
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown chart kind %q, want prices or returns\n", c.kind)
		return subcommands.ExitUsageError
	}
	if c.output == "" {
		c.output = c.kind + ".png"
	}

	a, err := analyze(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	png, err := draw(a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully drew %s to %s\n", c.kind, c.output)
	return subcommands.ExitSuccess
}
