package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnl"
	"github.com/etnz/pnl/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type riskCmd struct {
	portfolioValue string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "display the risk snapshot of the portfolio" }
func (*riskCmd) Usage() string {
	return `mbp risk [-portfolio-value <amount>]

  Displays drawdown, value at risk, beta, volatility, Sharpe ratio,
  concentration and sector exposure.

  Ratios refer to the value of the positions, unless -portfolio-value is set,
  for instance to account for cash held outside of the brokers.

`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioValue, "portfolio-value", "", "Portfolio value the risk ratios refer to. Defaults to the value of the positions.")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := decodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.portfolioValue != "" {
		v, err := decimal.NewFromString(c.portfolioValue)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -portfolio-value %q: %v\n", c.portfolioValue, err)
			return subcommands.ExitUsageError
		}
		s.PortfolioValue = pnl.M(v, s.Currency)
	}

	r, err := pnl.EvaluateConcurrently(ctx, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RiskMarkdown(r))
	return subcommands.ExitSuccess
}
