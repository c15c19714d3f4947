package pnl

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// pos is a helper for test to create a position in INR.
func pos(symbol, broker string, qty, avg, current, pnl float64) BrokerPosition {
	return BrokerPosition{
		Symbol:       symbol,
		BrokerID:     broker,
		BrokerName:   broker,
		Quantity:     Q(qty),
		AvgPrice:     INR(avg),
		CurrentPrice: INR(current),
		PnL:          INR(pnl),
	}
}

// with is a helper for test to set the optional fields of a position.
func (p BrokerPosition) with(pnlPercent, dayPnl float64, sector string) BrokerPosition {
	p.PnLPercent = Percent(pnlPercent)
	p.DayPnL = INR(dayPnl)
	p.Sector = sector
	return p
}

func beta(b float64) *float64 { return &b }

func brokers(ids ...string) []BrokerConnection {
	list := make([]BrokerConnection, 0, len(ids))
	for _, id := range ids {
		list = append(list, BrokerConnection{ID: id, DisplayName: "Broker " + id, BrokerType: "equity"})
	}
	return list
}
