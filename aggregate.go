package pnl

// AggregatedPosition merges the positions of one symbol across brokers.
type AggregatedPosition struct {
	Symbol          string
	TotalQuantity   Quantity
	AvgPrice        Money // quantity-weighted across Positions
	CurrentPrice    Money // from the first contributor
	TotalValue      Money
	TotalPnL        Money
	TotalPnLPercent Percent
	DayPnL          Money
	DayPnLPercent   Percent
	Positions       []BrokerPosition // contributors, in input order
}

// Cost returns the cost basis of the aggregate: average price × quantity.
func (a AggregatedPosition) Cost() Money { return a.AvgPrice.Mul(a.TotalQuantity) }

// aggregator folds positions of a single symbol.
//
// The average price is derived from an exact running cost total rather than
// from the previous average, so folding never compounds rounding.
type aggregator struct {
	AggregatedPosition
	cost Money // Σ avgPrice × quantity
}

func (a *aggregator) add(p BrokerPosition) {
	if len(a.Positions) == 0 {
		a.Symbol = p.Symbol
		a.CurrentPrice = p.CurrentPrice
	}
	a.TotalQuantity = a.TotalQuantity.Add(p.Quantity)
	a.cost = a.cost.Add(p.Cost())
	a.TotalValue = a.TotalValue.Add(p.Value())
	a.TotalPnL = a.TotalPnL.Add(p.PnL)
	a.DayPnL = a.DayPnL.Add(p.DayPnL)
	a.Positions = append(a.Positions, p)

	if a.TotalQuantity.IsZero() {
		a.AvgPrice = M(0, a.cost.cur)
	} else {
		a.AvgPrice = a.cost.Div(a.TotalQuantity)
	}
	a.TotalPnLPercent = ratio(a.TotalValue.Sub(a.cost), a.cost)
	a.DayPnLPercent = ratio(a.DayPnL, a.TotalValue.Sub(a.DayPnL))
}

// Aggregate merges positions by symbol (exact match) in order of first
// appearance. It is a pure function of its input, malformed values are not
// rejected but propagated.
func Aggregate(positions []BrokerPosition) []AggregatedPosition {
	index := make(map[string]int)
	var folds []*aggregator
	for _, p := range positions {
		i, exists := index[p.Symbol]
		if !exists {
			i = len(folds)
			index[p.Symbol] = i
			folds = append(folds, new(aggregator))
		}
		folds[i].add(p)
	}

	result := make([]AggregatedPosition, 0, len(folds))
	for _, f := range folds {
		result = append(result, f.AggregatedPosition)
	}
	return result
}
