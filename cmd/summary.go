package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
)

// summaryCmd displays the portfolio totals.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio totals across all brokers" }
func (*summaryCmd) Usage() string {
	return `mbp summary

  Displays the total value, P&L and day's P&L of the portfolio, and the best
  and worst performing brokers.

`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := evaluate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TotalsMarkdown(r.Totals))
	return subcommands.ExitSuccess
}
