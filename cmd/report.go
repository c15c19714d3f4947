package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	json bool
}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "display the complete report: totals, brokers, positions and risk"
}
func (*reportCmd) Usage() string {
	return `mbp report [-json]

  Displays the complete report of the snapshot.
  With -json, the report is printed as an indented JSON document instead.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the report as JSON.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := evaluate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.json {
		printMarkdown(renderer.ReportMarkdown(r))
		return subcommands.ExitSuccess
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot encode report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
