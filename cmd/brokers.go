package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
)

type brokersCmd struct{}

func (*brokersCmd) Name() string     { return "brokers" }
func (*brokersCmd) Synopsis() string { return "display the P&L summary of each broker" }
func (*brokersCmd) Usage() string {
	return `mbp brokers

  Displays, for each broker of the registry holding positions, its value,
  P&L, win and loss counts and its best and worst positions.

`
}

func (*brokersCmd) SetFlags(f *flag.FlagSet) {}

func (*brokersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := evaluate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BrokersMarkdown(r.Brokers))
	return subcommands.ExitSuccess
}
