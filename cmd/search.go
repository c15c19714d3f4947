package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pnl/eodhd"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type searchCmd struct {
	apiKey   string
	exchange string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search EODHD for the ticker of a security" }
func (*searchCmd) Usage() string {
	return `mbp search [-exchange <code>] <search term>

  Searches securities via EOD Historical Data API, to find the exchange code
  to use with 'mbp fetch -exchange'.

`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "eodhd-api-key", "", "EODHD API key. This flag takes precedence over the "+eodhdAPIKey+" environment variable.")
	f.StringVar(&c.exchange, "exchange", "", "Only list securities of this exchange.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	key := eodhdKey(c.apiKey)
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable\n", eodhdAPIKey)
		return subcommands.ExitUsageError
	}

	client := eodhd.NewClient(key, *currency, "", logger())
	results, err := client.Search(ctx, term, c.exchange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching securities: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(results) == 0 {
		fmt.Fprintf(stdout, "No results found for '%s'.\n", term)
		return subcommands.ExitSuccess
	}
	printMarkdown(searchMarkdown(term, results))
	return subcommands.ExitSuccess
}

func searchMarkdown(term string, results []eodhd.SearchResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Found %d results for '%s'", len(results), term))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Ticker", "Name", "Type", "ISIN", "Prev. Close"},
		Rows:      [][]string{},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, []string{
			r.Ticker(),
			r.Name,
			r.Type,
			r.ISIN,
			fmt.Sprintf("%.2f %s", r.PreviousClose, r.Currency),
		})
	}
	doc.Table(table)
	return doc.String()
}

// eodhdKey returns the API key set by flag, or by the environment.
func eodhdKey(value string) string {
	if value != "" {
		return value
	}
	return os.Getenv(eodhdAPIKey)
}
