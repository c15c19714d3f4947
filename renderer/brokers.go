package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pnl"
	md "github.com/nao1215/markdown"
)

// BrokersMarkdown renders one row per broker holding positions.
func BrokersMarkdown(summaries []pnl.BrokerPnLSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Brokers")
	brokersTable(doc, summaries)
	return doc.String()
}

func brokersTable(doc *md.Markdown, summaries []pnl.BrokerPnLSummary) {
	if len(summaries) == 0 {
		doc.PlainText("No broker holds any position.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Broker", "Type", "Positions", "Value", "P&L", "Return", "Day", "Top", "Worst"},
		Rows:   [][]string{},
	}
	for _, s := range summaries {
		name := s.BrokerName
		if name == "" {
			name = s.BrokerID
		}
		table.Rows = append(table.Rows, []string{
			name,
			s.BrokerType,
			fmt.Sprintf("%d (%d▲ %d▼)", s.PositionCount, s.ProfitablePositions, s.LosingPositions),
			s.TotalValue.String(),
			s.TotalPnL.SignedString(),
			s.TotalPnLPercent.SignedString(),
			s.DayPnLPercent.SignedString(),
			performer(s.TopPerformer),
			performer(s.WorstPerformer),
		})
	}
	doc.Table(table)
}

func performer(p *pnl.BrokerPosition) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", p.Symbol, p.PnLPercent.SignedString())
}
