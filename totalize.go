package pnl

// PortfolioMetrics are the grand totals across all brokers.
type PortfolioMetrics struct {
	TotalValue            Money
	TotalPnL              Money
	TotalPnLPercent       Percent
	TotalDayPnL           Money
	TotalDayPnLPercent    Percent
	TotalPositions        int
	BestPerformingBroker  *BrokerPnLSummary // nil when there is no broker
	WorstPerformingBroker *BrokerPnLSummary // nil when there is no broker
}

// Totalize reduces broker summaries into portfolio totals.
// Best and worst brokers compare TotalPnLPercent, ties keep the first one.
func Totalize(summaries []BrokerPnLSummary) PortfolioMetrics {
	var m PortfolioMetrics
	best, worst := -1, -1
	for i, s := range summaries {
		m.TotalValue = m.TotalValue.Add(s.TotalValue)
		m.TotalPnL = m.TotalPnL.Add(s.TotalPnL)
		m.TotalDayPnL = m.TotalDayPnL.Add(s.DayPnL)
		m.TotalPositions += s.PositionCount

		if best < 0 || s.TotalPnLPercent > summaries[best].TotalPnLPercent {
			best = i
		}
		if worst < 0 || s.TotalPnLPercent < summaries[worst].TotalPnLPercent {
			worst = i
		}
	}
	m.TotalPnLPercent = ratio(m.TotalPnL, m.TotalValue.Sub(m.TotalPnL))
	m.TotalDayPnLPercent = ratio(m.TotalDayPnL, m.TotalValue.Sub(m.TotalDayPnL))

	if best >= 0 {
		b, w := summaries[best], summaries[worst]
		m.BestPerformingBroker, m.WorstPerformingBroker = &b, &w
	}
	return m
}
