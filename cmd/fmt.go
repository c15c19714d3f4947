package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	check bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the snapshot files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mbp fmt [-check]

  Validates the positions and brokers files of the snapshot folder and
  rewrites them in a canonical form: one JSON object per line with a fixed
  field order for positions, and a YAML list for brokers.

  With -check, files are not rewritten and the command fails if any file is
  not in canonical form.

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "Only report files that are not in canonical form.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := decodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	files := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{pnl.PositionsFile, func(b *bytes.Buffer) error { return pnl.EncodePositions(b, s.Positions) }},
		{pnl.BrokersFile, func(b *bytes.Buffer) error { return pnl.EncodeBrokers(b, s.Brokers) }},
	}

	status := subcommands.ExitSuccess
	for _, file := range files {
		name := snapshotPath(file.name)
		var b bytes.Buffer
		if err := file.encode(&b); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", name, err)
			return subcommands.ExitFailure
		}
		changed, err := canonicalize(name, b.Bytes(), c.check)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if changed && c.check {
			fmt.Fprintf(stdout, "%s is not formatted\n", name)
			status = subcommands.ExitFailure
		} else if changed {
			fmt.Fprintf(stdout, "%s formatted\n", name)
		}
	}
	return status
}

// canonicalize compares the file content with its canonical form, and
// rewrites it unless dryRun is set. It reports whether they differ.
func canonicalize(name string, canonical []byte, dryRun bool) (bool, error) {
	current, err := os.ReadFile(name)
	if err != nil {
		return false, err
	}
	if bytes.Equal(current, canonical) {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := os.WriteFile(name, canonical, 0o644); err != nil {
		return true, fmt.Errorf("cannot write %s: %w", name, err)
	}
	return true, nil
}
