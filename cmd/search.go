package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/riskreturn/eodhd"
	"github.com/google/subcommands"
)

// searchCmd finds the symbol of a security on EODHD.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search for the symbol of a security on EODHD" }
func (*searchCmd) Usage() string {
	return `rr search <search term>

  Searches for securities by name, ticker or ISIN via EOD Historical Data API
  and prints the symbol to use in -assets or -benchmark.

  Requires the EODHD_API_KEY environment variable to be set or the
  -eodhd-api-key flag.
`
}

func (*searchCmd) SetFlags(f *flag.FlagSet) {}

func (*searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	if *eodhdKeyFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable\n", EnvEODHDAPIKey)
		return subcommands.ExitFailure
	}

	results, err := eodhd.New(*eodhdKeyFlag, logger()).Search(ctx, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(results) == 0 {
		fmt.Printf("No results found for '%s'.\n", term)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(results), term)
	for _, item := range results {
		fmt.Printf("➡️   Name        : %s (%s)\n", item.Name, item.Symbol())
		fmt.Printf("    Type        : %s, Country: %s, Currency: %s\n", item.Type, item.Country, item.Currency)
		if item.ISIN != "" {
			fmt.Printf("    ISIN        : %s\n", item.ISIN)
		}
		fmt.Printf("    Prev. Close : %.2f on %s\n\n", item.PreviousClose, item.PreviousCloseDate)
	}
	return subcommands.ExitSuccess
}
