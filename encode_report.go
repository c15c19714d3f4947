package pnl

import "encoding/json"

// JSON forms of the derived entities, with a stable field order.

func (a AggregatedPosition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", a.Symbol)
	w.Append("totalQuantity", a.TotalQuantity)
	w.Append("avgPrice", a.AvgPrice)
	w.Append("currentPrice", a.CurrentPrice)
	w.Append("totalValue", a.TotalValue)
	w.Append("totalPnl", a.TotalPnL)
	w.Append("totalPnlPercent", float64(a.TotalPnLPercent))
	w.Append("dayPnl", a.DayPnL)
	w.Append("dayPnlPercent", float64(a.DayPnLPercent))
	w.Append("positions", a.Positions)
	return w.MarshalJSON()
}

func (s BrokerPnLSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("brokerId", s.BrokerID)
	w.Append("brokerName", s.BrokerName)
	w.Optional("brokerType", s.BrokerType)
	w.Append("totalValue", s.TotalValue)
	w.Append("totalPnl", s.TotalPnL)
	w.Append("totalPnlPercent", float64(s.TotalPnLPercent))
	w.Append("dayPnl", s.DayPnL)
	w.Append("dayPnlPercent", float64(s.DayPnLPercent))
	w.Append("positionCount", s.PositionCount)
	w.Append("profitablePositions", s.ProfitablePositions)
	w.Append("losingPositions", s.LosingPositions)
	w.Append("avgPnlPerPosition", s.AvgPnLPerPosition)
	w.Append("topPerformer", performer(s.TopPerformer))
	w.Append("worstPerformer", performer(s.WorstPerformer))
	return w.MarshalJSON()
}

// performer refers to a position by its symbol, null when absent.
func performer(p *BrokerPosition) *string {
	if p == nil {
		return nil
	}
	return &p.Symbol
}

// brokerRef refers to a summary by its broker id, null when absent.
func brokerRef(s *BrokerPnLSummary) *string {
	if s == nil {
		return nil
	}
	return &s.BrokerID
}

func (m PortfolioMetrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalValue", m.TotalValue)
	w.Append("totalPnl", m.TotalPnL)
	w.Append("totalPnlPercent", float64(m.TotalPnLPercent))
	w.Append("totalDayPnl", m.TotalDayPnL)
	w.Append("totalDayPnlPercent", float64(m.TotalDayPnLPercent))
	w.Append("totalPositions", m.TotalPositions)
	w.Append("bestPerformingBroker", brokerRef(m.BestPerformingBroker))
	w.Append("worstPerformingBroker", brokerRef(m.WorstPerformingBroker))
	return w.MarshalJSON()
}

func (r RiskSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("positionValue", r.PositionValue)
	w.Append("portfolioValue", r.PortfolioValue)
	w.Append("positionRiskPercent", float64(r.PositionRiskPercent))
	w.Append("correlationRisk", r.CorrelationRisk)
	w.Append("sectorExposure", r.SectorExposure)
	w.Append("maxDrawdownPercent", float64(r.MaxDrawdownPercent))
	w.Append("valueAtRisk", r.ValueAtRisk)
	w.Append("beta", r.Beta)
	w.Append("meanReturn", r.MeanReturn)
	w.Append("volatility", r.Volatility)
	w.Append("sharpeRatio", r.SharpeRatio)
	return w.MarshalJSON()
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("asOf", r.AsOf)
	w.Optional("currency", r.Currency)
	w.Append("positions", nonNil(r.Positions))
	w.Append("brokers", nonNil(r.Brokers))
	w.Append("totals", r.Totals)
	w.Append("risk", r.Risk)
	return w.MarshalJSON()
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

var _ json.Marshaler = (*Report)(nil)
