// Command rr analyzes the risk and the return of a portfolio of stocks.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/riskreturn/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	// Handle shell completion requests, install with COMP_INSTALL=1 rr.
	completion(commander).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the subcommands and their flags for shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	root.Flags["snapshot"] = predict.Files("*.jsonl")
	root.Flags["source"] = predict.Set{"yahoo", "eodhd"}

	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
	})
	if c, ok := root.Sub["chart"]; ok {
		c.Flags["kind"] = predict.Set{"prices", "returns"}
		c.Flags["o"] = predict.Files("*.png")
	}
	if c, ok := root.Sub["fetch"]; ok {
		c.Flags["o"] = predict.Files("*.jsonl")
	}
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		m[f.Name] = predict.Something
	})
	return m
}
