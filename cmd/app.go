// Package cmd implements the CLI application consolidating positions held at
// several brokers.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/pnl"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&positionsCmd{}, "reports")
	c.Register(&brokersCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&riskCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&watchCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")

	c.Register(&fetchCmd{}, "snapshot")
	c.Register(&searchCmd{}, "snapshot")
	c.Register(&fmtCmd{}, "snapshot")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	snapshotDir = flag.String("snapshot-dir", ".", "Path to the snapshot folder holding "+pnl.PositionsFile+", "+pnl.BrokersFile+" and "+pnl.MarketFile)
	currency    = flag.String("currency", "INR", "Currency of all the amounts in the snapshot")
	logLevel    = flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	logPretty   = flag.Bool("log-pretty", true, "Human friendly logs on stderr, JSON logs otherwise")
	rawMarkdown = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them for the terminal")
)

// stdout is where commands print their reports.
var stdout io.Writer = os.Stdout

// snapshotPath returns the path of a file inside the snapshot folder.
func snapshotPath(name string) string { return filepath.Join(*snapshotDir, name) }

// decodeSnapshot loads the snapshot folder.
func decodeSnapshot() (*pnl.Snapshot, error) {
	s, err := pnl.LoadSnapshot(*snapshotDir, *currency)
	if err != nil {
		return nil, fmt.Errorf("could not load snapshot %q: %w", *snapshotDir, err)
	}
	return s, nil
}

// evaluate loads the snapshot folder and evaluates it.
func evaluate(ctx context.Context) (*pnl.Report, error) {
	s, err := decodeSnapshot()
	if err != nil {
		return nil, err
	}
	return pnl.EvaluateConcurrently(ctx, s)
}

// logger returns the application logger configured by the global flags.
func logger() zerolog.Logger {
	log, err := newLogger(os.Stderr, *logLevel, *logPretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using warn level\n", err)
	}
	return log
}
