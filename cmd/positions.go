package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
)

// positionsCmd displays the positions consolidated per symbol.
type positionsCmd struct {
	sort   string
	broker string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display positions consolidated across brokers" }
func (*positionsCmd) Usage() string {
	return `mbp positions [-sort <key>] [-broker <id>]

  Displays one row per symbol, merging the positions held at every broker:
  total quantity, weighted average price, value and P&L.

`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "Sort key: "+strings.Join(renderer.SortKeys, ", ")+". Keeps the snapshot order by default.")
	f.StringVar(&c.broker, "broker", "", "Only display the positions held at this broker id.")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := evaluate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	positions := r.Positions
	if c.broker != "" {
		positions = renderer.FilterBroker(positions, c.broker)
	}
	positions, err = renderer.SortPositions(positions, c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.PositionsMarkdown(positions))
	return subcommands.ExitSuccess
}
