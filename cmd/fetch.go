package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/riskreturn"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch prices and save them as a snapshot" }
func (*fetchCmd) Usage() string {
	return `rr fetch [-o <file>]

  Fetches the daily prices of the assets and the benchmark over the last
  -years, from the -source, and saves them as a snapshot file.

  Analyze the snapshot later, offline, with 'rr -snapshot <file> report'.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "snapshot.jsonl", "Snapshot `file` to write.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	snap, err := fetch(ctx, cfg, logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := riskreturn.SaveSnapshot(c.output, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully saved %s prices from %s to %s\n", snap.Range(), *sourceFlag, c.output)
	return subcommands.ExitSuccess
}
