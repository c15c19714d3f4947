package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pnl"
	md "github.com/nao1215/markdown"
)

// TotalsMarkdown renders the portfolio totals across all brokers.
func TotalsMarkdown(m pnl.PortfolioMetrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio Summary")
	totalsTable(doc, m)
	return doc.String()
}

func totalsTable(doc *md.Markdown, m pnl.PortfolioMetrics) {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Value"),
			md.Bold(m.TotalValue.String()),
			"",
		},
		Rows: [][]string{
			{"Unrealized P&L", m.TotalPnL.SignedString(), m.TotalPnLPercent.SignedString()},
			{"Day's P&L", m.TotalDayPnL.SignedString(), m.TotalDayPnLPercent.SignedString()},
			{"Positions", fmt.Sprint(m.TotalPositions), ""},
		},
	}
	if b := m.BestPerformingBroker; b != nil {
		table.Rows = append(table.Rows, []string{"Best Broker", brokerLabel(b), b.TotalPnLPercent.SignedString()})
	}
	if w := m.WorstPerformingBroker; w != nil {
		table.Rows = append(table.Rows, []string{"Worst Broker", brokerLabel(w), w.TotalPnLPercent.SignedString()})
	}
	doc.Table(table)
}

func brokerLabel(s *pnl.BrokerPnLSummary) string {
	if s.BrokerName != "" {
		return s.BrokerName
	}
	return s.BrokerID
}
