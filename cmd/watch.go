package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/pnl"
	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
)

// watchCmd prints the summary again each time the snapshot changes.
type watchCmd struct {
	every time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "display the summary each time the snapshot changes" }
func (*watchCmd) Usage() string {
	return `mbp watch [-every <duration>]

  Polls the snapshot folder and displays the portfolio totals whenever one of
  its files changes. Stops on interrupt.

`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.every, "every", 5*time.Second, "Polling period.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.every <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -every must be positive, got %v\n", c.every)
		return subcommands.ExitUsageError
	}
	log := logger()

	err := watch(ctx, c.every, func() {
		r, err := evaluate(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("cannot evaluate snapshot")
			return
		}
		printMarkdown(renderer.TotalsMarkdown(r.Totals))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// watch calls update once, then every time the snapshot fingerprint changes.
// It returns when ctx is done.
func watch(ctx context.Context, every time.Duration, update func()) error {
	last, err := fingerprint()
	if err != nil {
		return err
	}
	update()

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		fp, err := fingerprint()
		if err != nil {
			return err
		}
		if fp != last {
			last = fp
			update()
		}
	}
}

// fingerprint identifies the state of the snapshot files by their size and
// modification time. Missing files are part of the state.
func fingerprint() (string, error) {
	var fp string
	for _, name := range []string{pnl.PositionsFile, pnl.BrokersFile, pnl.MarketFile} {
		info, err := os.Stat(snapshotPath(name))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fp += name + ":-;"
		case err != nil:
			return "", err
		default:
			fp += fmt.Sprintf("%s:%d:%d;", name, info.Size(), info.ModTime().UnixNano())
		}
	}
	return fp, nil
}
