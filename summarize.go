package pnl

// BrokerPnLSummary rolls up the positions held at one broker.
type BrokerPnLSummary struct {
	BrokerID            string
	BrokerName          string
	BrokerType          string
	TotalValue          Money
	TotalPnL            Money
	TotalPnLPercent     Percent
	DayPnL              Money
	DayPnLPercent       Percent
	PositionCount       int
	ProfitablePositions int
	LosingPositions     int
	AvgPnLPerPosition   Money
	TopPerformer        *BrokerPosition // highest PnLPercent, nil when no position
	WorstPerformer      *BrokerPosition // lowest PnLPercent, nil when no position
}

// Summarize computes one summary per broker in brokers, in registry order.
//
// Brokers without positions are dropped from the result. Positions of a
// broker absent from the registry are ignored. Best and worst performers are
// tracked by reference to the position itself, ties keep the first one met.
func Summarize(positions []BrokerPosition, brokers []BrokerConnection) []BrokerPnLSummary {
	summaries := make([]BrokerPnLSummary, len(brokers))
	index := make(map[string]int, len(brokers))
	for i, b := range brokers {
		summaries[i] = BrokerPnLSummary{
			BrokerID:   b.ID,
			BrokerName: b.DisplayName,
			BrokerType: b.BrokerType,
		}
		if _, exists := index[b.ID]; !exists {
			index[b.ID] = i
		}
	}

	top := make([]int, len(brokers))
	worst := make([]int, len(brokers))
	for i := range brokers {
		top[i], worst[i] = -1, -1
	}

	for j, p := range positions {
		i, exists := index[p.BrokerID]
		if !exists {
			continue
		}
		s := &summaries[i]
		s.TotalValue = s.TotalValue.Add(p.Value())
		s.TotalPnL = s.TotalPnL.Add(p.PnL)
		s.DayPnL = s.DayPnL.Add(p.DayPnL)
		s.PositionCount++
		switch {
		case p.PnL.IsPositive():
			s.ProfitablePositions++
		case p.PnL.IsNegative():
			s.LosingPositions++
		}

		if top[i] < 0 || p.PnLPercent > positions[top[i]].PnLPercent {
			top[i] = j
		}
		if worst[i] < 0 || p.PnLPercent < positions[worst[i]].PnLPercent {
			worst[i] = j
		}
	}

	result := make([]BrokerPnLSummary, 0, len(summaries))
	for i, s := range summaries {
		if s.PositionCount == 0 {
			continue
		}
		s.TotalPnLPercent = ratio(s.TotalPnL, s.TotalValue.Sub(s.TotalPnL))
		s.DayPnLPercent = ratio(s.DayPnL, s.TotalValue.Sub(s.DayPnL))
		s.AvgPnLPerPosition = s.TotalPnL.Div(Q(s.PositionCount))
		best, low := positions[top[i]], positions[worst[i]]
		s.TopPerformer, s.WorstPerformer = &best, &low
		result = append(result, s)
	}
	return result
}
