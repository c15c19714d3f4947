package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/pnl"
)

// Sort keys accepted by SortPositions.
const (
	BySymbol = "symbol"
	ByValue  = "value"
	ByPnL    = "pnl"
)

// SortKeys lists the valid sort keys.
var SortKeys = []string{BySymbol, ByValue, ByPnL}

// SortPositions returns a sorted copy of positions.
// Value and P&L sort the largest first, ties are kept in their original order.
// An empty key keeps the consolidation order.
func SortPositions(positions []pnl.AggregatedPosition, key string) ([]pnl.AggregatedPosition, error) {
	sorted := slices.Clone(positions)
	var cmp func(a, b pnl.AggregatedPosition) int
	switch key {
	case "":
		return sorted, nil
	case BySymbol:
		cmp = func(a, b pnl.AggregatedPosition) int { return strings.Compare(a.Symbol, b.Symbol) }
	case ByValue:
		cmp = func(a, b pnl.AggregatedPosition) int { return b.TotalValue.Decimal().Cmp(a.TotalValue.Decimal()) }
	case ByPnL:
		cmp = func(a, b pnl.AggregatedPosition) int { return b.TotalPnL.Decimal().Cmp(a.TotalPnL.Decimal()) }
	default:
		return nil, fmt.Errorf("unknown sort key %q, valid keys are %s", key, strings.Join(SortKeys, ", "))
	}
	slices.SortStableFunc(sorted, cmp)
	return sorted, nil
}

// FilterBroker returns the consolidated view of the positions held at
// brokerID only. The input is left unchanged.
func FilterBroker(positions []pnl.AggregatedPosition, brokerID string) []pnl.AggregatedPosition {
	var held []pnl.BrokerPosition
	for _, a := range positions {
		for _, p := range a.Positions {
			if p.BrokerID == brokerID {
				held = append(held, p)
			}
		}
	}
	return pnl.Aggregate(held)
}
