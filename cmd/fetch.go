package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl"
	"github.com/etnz/pnl/eodhd"
	"github.com/google/subcommands"
)

const eodhdAPIKey = "EODHD_API_KEY"

type fetchCmd struct {
	apiKey   string
	exchange string
	cacheDir string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches prices and betas from EODHD into the market file" }
func (*fetchCmd) Usage() string {
	return `mbp fetch [-exchange <code>] [-cache-dir <dir>]

  Fetches the latest price and beta of every symbol held in the snapshot
  from EOD Historical Data, and merges them into the market file.

  Symbols the feed cannot quote keep their previous market data. A beta
  unknown to the feed keeps the previously known beta.

  Requires an API key set via the -eodhd-api-key flag or the EODHD_API_KEY
  environment variable (a .env file in the working directory is loaded).

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "eodhd-api-key", "", "EODHD API key. This flag takes precedence over the "+eodhdAPIKey+" environment variable. You can get one at https://eodhd.com/")
	f.StringVar(&c.exchange, "exchange", eodhd.DefaultExchange, "Exchange code appended to symbols without one.")
	f.StringVar(&c.cacheDir, "cache-dir", "", "Folder of the daily HTTP cache. Defaults to the system temp dir.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := eodhdKey(c.apiKey)
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable\n", eodhdAPIKey)
		return subcommands.ExitUsageError
	}

	s, err := decodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	symbols := s.Symbols()
	if len(symbols) == 0 {
		fmt.Fprintln(stdout, "No positions, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	client := eodhd.NewClient(key, s.Currency, c.cacheDir, logger())
	client.Exchange = c.exchange
	quotes, err := client.Fetch(ctx, symbols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching from EODHD: %v\n", err)
		return subcommands.ExitFailure
	}

	market := mergeMarket(s.Market, quotes)
	if err := writeMarket(market); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Fetched %d of %d symbols into %s.\n", len(quotes), len(symbols), snapshotPath(pnl.MarketFile))
	return subcommands.ExitSuccess
}

// mergeMarket returns old updated with fresh quotes. A fresh quote without a
// beta keeps the old beta.
func mergeMarket(old, fresh map[string]pnl.Quote) map[string]pnl.Quote {
	market := make(map[string]pnl.Quote, len(old)+len(fresh))
	for symbol, q := range old {
		market[symbol] = q
	}
	for symbol, q := range fresh {
		if q.Beta == nil {
			q.Beta = old[symbol].Beta
		}
		market[symbol] = q
	}
	return market
}

func writeMarket(market map[string]pnl.Quote) error {
	name := snapshotPath(pnl.MarketFile)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot create market file: %w", err)
	}
	defer f.Close()
	if err := pnl.EncodeMarket(f, market); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	return f.Close()
}
