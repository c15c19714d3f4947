package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/pnl"
	md "github.com/nao1215/markdown"
)

// PositionsMarkdown renders the consolidated positions, one row per symbol.
func PositionsMarkdown(positions []pnl.AggregatedPosition) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Positions")
	positionsTable(doc, positions)
	return doc.String()
}

func positionsTable(doc *md.Markdown, positions []pnl.AggregatedPosition) {
	if len(positions) == 0 {
		doc.PlainText("No positions.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Symbol", "Quantity", "Avg. Price", "Price", "Value", "P&L", "Return", "Day", "Brokers"},
		Rows:   [][]string{},
	}
	for _, a := range positions {
		table.Rows = append(table.Rows, []string{
			a.Symbol,
			a.TotalQuantity.String(),
			a.AvgPrice.String(),
			a.CurrentPrice.String(),
			a.TotalValue.String(),
			a.TotalPnL.SignedString(),
			a.TotalPnLPercent.SignedString(),
			a.DayPnLPercent.SignedString(),
			brokerNames(a.Positions),
		})
	}
	doc.Table(table)
}

// brokerNames lists the distinct brokers holding the positions.
func brokerNames(positions []pnl.BrokerPosition) string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range positions {
		name := p.BrokerName
		if name == "" {
			name = p.BrokerID
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
