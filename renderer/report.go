package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pnl"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the whole report: totals, brokers, positions and risk.
func ReportMarkdown(r *pnl.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.AsOf.IsZero() {
		doc.H1("Portfolio Report")
	} else {
		doc.H1(fmt.Sprintf("Portfolio Report as of %s", r.AsOf.Format("2006-01-02 15:04")))
	}

	doc.H2("Summary")
	totalsTable(doc, r.Totals)

	doc.H2("Brokers")
	brokersTable(doc, r.Brokers)

	doc.H2("Positions")
	positionsTable(doc, r.Positions)

	doc.H2("Risk")
	riskSection(doc, r, doc.H3)

	return doc.String()
}
