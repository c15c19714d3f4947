package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/pnl"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

const (
	testPositions = `{"symbol":"HDFC","brokerId":"B1","quantity":5,"avgPrice":1600,"currentPrice":1500,"pnl":-500,"pnlPercent":-6.25,"dayPnl":-20,"sector":"Finance"}
{"symbol":"TCS","brokerId":"B1","quantity":10,"avgPrice":100,"currentPrice":110,"pnl":100,"pnlPercent":10,"dayPnl":20,"sector":"IT"}
{"symbol":"TCS","brokerId":"B2","quantity":10,"avgPrice":120,"currentPrice":110,"pnl":-100,"pnlPercent":-8.33,"dayPnl":20,"sector":"IT"}
`
	testBrokers = `- id: B1
  displayName: Zerodha
  brokerType: equity
- id: B2
  displayName: Upstox
  brokerType: equity
`
	testMarket = `{"TCS": {"price": 110, "beta": 0.9}, "HDFC": {"price": 1500}}`
)

// useSnapshot writes a snapshot folder and points the global flags to it.
// Reports are printed as raw markdown into the returned buffer.
func useSnapshot(t *testing.T, files map[string]string) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	oldDir, oldRaw, oldOut := *snapshotDir, *rawMarkdown, stdout
	t.Cleanup(func() { *snapshotDir, *rawMarkdown, stdout = oldDir, oldRaw, oldOut })

	var out bytes.Buffer
	*snapshotDir, *rawMarkdown, stdout = dir, true, &out
	return dir, &out
}

// defaultSnapshot uses the test positions, brokers and market files.
func defaultSnapshot(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	return useSnapshot(t, map[string]string{
		pnl.PositionsFile: testPositions,
		pnl.BrokersFile:   testBrokers,
		pnl.MarketFile:    testMarket,
	})
}

// run parses args for cmd and executes it.
func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}
