package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pnl"
	md "github.com/nao1215/markdown"
)

// RiskMarkdown renders the risk snapshot of a report with its sector
// breakdown.
func RiskMarkdown(r *pnl.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Risk")
	riskSection(doc, r, doc.H2)
	return doc.String()
}

// riskSection writes the risk figures, sub sections use heading.
func riskSection(doc *md.Markdown, r *pnl.Report, heading func(string) *md.Markdown) {
	risk := r.Risk
	hhi, effective := r.Concentration()
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Position Value", risk.PositionValue.String()},
			{"Portfolio Value", risk.PortfolioValue.String()},
			{"Position Risk", risk.PositionRiskPercent.String()},
			{"Drawdown", risk.MaxDrawdownPercent.SignedString()},
			{"Value at Risk (95%)", risk.ValueAtRisk.String()},
			{"Beta", fmt.Sprintf("%.2f", risk.Beta)},
			{"Volatility", pnl.PercentOf(risk.Volatility).String()},
			{"Sharpe Ratio", fmt.Sprintf("%.2f", risk.SharpeRatio)},
			{"Correlation Risk", fmt.Sprintf("%.1f", risk.CorrelationRisk)},
			{"Concentration (HHI)", fmt.Sprintf("%.3f", hhi)},
			{"Effective Holdings", fmt.Sprintf("%.1f", effective)},
		},
	})

	weights := r.SectorWeights()
	if len(weights) == 0 {
		return
	}
	heading("Sector Exposure")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Sector", "Value", "Weight"},
		Rows:      [][]string{},
	}
	for _, w := range weights {
		table.Rows = append(table.Rows, []string{w.Sector, w.Value.String(), w.Weight.String()})
	}
	doc.Table(table)
}
