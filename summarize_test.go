package pnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBrokers is a small book held at two brokers, a third one being connected
// but empty.
func twoBrokers() ([]BrokerPosition, []BrokerConnection) {
	positions := []BrokerPosition{
		pos("TCS", "B1", 10, 100, 110, 100).with(10, 20, "IT"),
		pos("INFY", "B1", 5, 200, 190, -50).with(-5, -10, "IT"),
		pos("HDFC", "B1", 2, 1500, 1500, 0).with(0, 0, "Finance"),
		pos("TCS", "B2", 10, 120, 110, -100).with(-8.33, 20, "IT"),
	}
	return positions, brokers("B1", "B2", "B3")
}

func TestSummarize(t *testing.T) {
	positions, registry := twoBrokers()
	got := Summarize(positions, registry)
	require.Len(t, got, 2)

	b1 := got[0]
	assert.Equal(t, "B1", b1.BrokerID)
	assert.Equal(t, "Broker B1", b1.BrokerName)
	assert.Equal(t, "equity", b1.BrokerType)
	assert.True(t, b1.TotalValue.Equal(INR(5050)), "TotalValue = %v, want 5050", b1.TotalValue)
	assert.True(t, b1.TotalPnL.Equal(INR(50)), "TotalPnL = %v, want 50", b1.TotalPnL)
	assert.True(t, b1.DayPnL.Equal(INR(10)), "DayPnL = %v, want 10", b1.DayPnL)
	assert.Equal(t, 3, b1.PositionCount)
	assert.Equal(t, 1, b1.ProfitablePositions)
	assert.Equal(t, 1, b1.LosingPositions)
	// 50 over a cost basis of 5050 - 50
	assert.True(t, b1.TotalPnLPercent.Equal(1), "TotalPnLPercent = %v, want 1%%", b1.TotalPnLPercent)
	assert.True(t, b1.DayPnLPercent.Equal(Percent(100*10.0/5040)), "DayPnLPercent = %v", b1.DayPnLPercent)
	assert.InDelta(t, 50.0/3, b1.AvgPnLPerPosition.AsFloat(), 1e-9)
	require.NotNil(t, b1.TopPerformer)
	require.NotNil(t, b1.WorstPerformer)
	assert.Equal(t, "TCS", b1.TopPerformer.Symbol)
	assert.Equal(t, "INFY", b1.WorstPerformer.Symbol)

	b2 := got[1]
	assert.Equal(t, "B2", b2.BrokerID)
	assert.Equal(t, 1, b2.PositionCount)
	assert.Equal(t, 0, b2.ProfitablePositions)
	assert.Equal(t, 1, b2.LosingPositions)
	assert.True(t, b2.TotalPnLPercent.Equal(Percent(-100*100.0/1200)), "TotalPnLPercent = %v", b2.TotalPnLPercent)
	assert.Equal(t, "TCS", b2.TopPerformer.Symbol)
	assert.Equal(t, "TCS", b2.WorstPerformer.Symbol)
}

func TestSummarize_WinLossNeverExceedsCount(t *testing.T) {
	positions, registry := twoBrokers()
	for _, s := range Summarize(positions, registry) {
		assert.LessOrEqual(t, s.ProfitablePositions+s.LosingPositions, s.PositionCount, s.BrokerID)
	}
}

func TestSummarize_DropsBrokersWithoutPositions(t *testing.T) {
	positions, registry := twoBrokers()
	for _, s := range Summarize(positions, registry) {
		assert.NotEqual(t, "B3", s.BrokerID)
	}
	assert.Empty(t, Summarize(nil, brokers("B1")))
}

func TestSummarize_TiesKeepFirstPosition(t *testing.T) {
	positions := []BrokerPosition{
		pos("A", "B1", 1, 100, 105, 5).with(5, 0, ""),
		pos("B", "B1", 1, 100, 105, 5).with(5, 0, ""),
		pos("C", "B1", 1, 100, 105, 5).with(5, 0, ""),
	}
	got := Summarize(positions, brokers("B1"))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].TopPerformer.Symbol)
	assert.Equal(t, "A", got[0].WorstPerformer.Symbol)
}

func TestSummarize_SameSymbolTwiceAtOneBroker(t *testing.T) {
	// performers are tracked by position, not re-resolved by symbol.
	positions := []BrokerPosition{
		pos("TCS", "B1", 1, 100, 90, -10).with(-10, 0, ""),
		pos("TCS", "B1", 1, 50, 90, 40).with(80, 0, ""),
	}
	got := Summarize(positions, brokers("B1"))
	require.Len(t, got, 1)
	assert.Equal(t, Percent(80), got[0].TopPerformer.PnLPercent)
	assert.Equal(t, Percent(-10), got[0].WorstPerformer.PnLPercent)
}

func TestSummarize_IgnoresUnknownBrokers(t *testing.T) {
	positions := []BrokerPosition{
		pos("TCS", "B1", 10, 100, 110, 100),
		pos("TCS", "GHOST", 10, 100, 110, 100),
	}
	got := Summarize(positions, brokers("B1"))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].PositionCount)
}
