package pnl

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// BrokerPosition is the holding of a single symbol at a single broker, as
// reported by the broker. P&L figures are computed by the broker, not here.
type BrokerPosition struct {
	Symbol       string
	BrokerID     string
	BrokerName   string
	Quantity     Quantity
	AvgPrice     Money
	CurrentPrice Money
	PnL          Money
	PnLPercent   Percent
	DayPnL       Money
	Sector       string // optional
}

// Value returns the market value of the position: quantity × current price.
func (p BrokerPosition) Value() Money { return p.CurrentPrice.Mul(p.Quantity) }

// Cost returns the cost basis of the position: quantity × average price.
func (p BrokerPosition) Cost() Money { return p.AvgPrice.Mul(p.Quantity) }

// BrokerConnection is an entry of the broker registry.
// Only ID, DisplayName and BrokerType are used for consolidation.
type BrokerConnection struct {
	ID           string   `yaml:"id" json:"id"`
	DisplayName  string   `yaml:"displayName" json:"displayName"`
	BrokerType   string   `yaml:"brokerType" json:"brokerType"`
	Status       string   `yaml:"status,omitempty" json:"status,omitempty"`
	Capabilities []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

// Quote is the market metadata for a symbol.
// A nil Beta means the feed does not know it.
type Quote struct {
	Price Money
	Beta  *float64
}

// ErrInvalidPosition is returned when a position record is not well typed.
var ErrInvalidPosition = errors.New("invalid position")

// jposition is the JSON form of a BrokerPosition. Pointers detect missing
// required fields.
type jposition struct {
	Symbol       string           `json:"symbol"`
	BrokerID     string           `json:"brokerId"`
	BrokerName   string           `json:"brokerName"`
	Quantity     *decimal.Decimal `json:"quantity"`
	AvgPrice     *decimal.Decimal `json:"avgPrice"`
	CurrentPrice *decimal.Decimal `json:"currentPrice"`
	PnL          *decimal.Decimal `json:"pnl"`
	PnLPercent   *float64         `json:"pnlPercent"`
	DayPnL       *decimal.Decimal `json:"dayPnl"`
	Sector       string           `json:"sector"`
}

func (j *jposition) check() error {
	switch {
	case j.Symbol == "":
		return fmt.Errorf("%w: missing symbol", ErrInvalidPosition)
	case j.BrokerID == "":
		return fmt.Errorf("%w: %s: missing brokerId", ErrInvalidPosition, j.Symbol)
	case j.Quantity == nil:
		return fmt.Errorf("%w: %s@%s: missing quantity", ErrInvalidPosition, j.Symbol, j.BrokerID)
	case j.AvgPrice == nil:
		return fmt.Errorf("%w: %s@%s: missing avgPrice", ErrInvalidPosition, j.Symbol, j.BrokerID)
	case j.CurrentPrice == nil:
		return fmt.Errorf("%w: %s@%s: missing currentPrice", ErrInvalidPosition, j.Symbol, j.BrokerID)
	}
	return nil
}

// decodePosition parses a single JSON position, amounts are in currency.
func decodePosition(data []byte, currency string) (BrokerPosition, error) {
	var j jposition
	if err := json.Unmarshal(data, &j); err != nil {
		return BrokerPosition{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	if err := j.check(); err != nil {
		return BrokerPosition{}, err
	}
	opt := func(d *decimal.Decimal) Money {
		if d == nil {
			return M(0, currency)
		}
		return M(*d, currency)
	}
	p := BrokerPosition{
		Symbol:       j.Symbol,
		BrokerID:     j.BrokerID,
		BrokerName:   j.BrokerName,
		Quantity:     Q(*j.Quantity),
		AvgPrice:     M(*j.AvgPrice, currency),
		CurrentPrice: M(*j.CurrentPrice, currency),
		PnL:          opt(j.PnL),
		DayPnL:       opt(j.DayPnL),
		Sector:       j.Sector,
	}
	if j.PnLPercent != nil {
		p.PnLPercent = Percent(*j.PnLPercent)
	}
	return p, nil
}

// number renders a decimal as a bare JSON number.
func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

// MarshalJSON writes the position with amounts as bare numbers, in a stable
// field order.
func (p BrokerPosition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.Symbol)
	w.Append("brokerId", p.BrokerID)
	w.Optional("brokerName", p.BrokerName)
	w.Append("quantity", number(p.Quantity.value))
	w.Append("avgPrice", number(p.AvgPrice.value))
	w.Append("currentPrice", number(p.CurrentPrice.value))
	w.Append("pnl", number(p.PnL.value))
	w.Append("pnlPercent", float64(p.PnLPercent))
	w.Append("dayPnl", number(p.DayPnL.value))
	w.Optional("sector", p.Sector)
	return w.MarshalJSON()
}

// MarshalJSON writes the quote with a bare price, and the beta only if known.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("price", number(q.Price.value))
	w.Optional("beta", q.Beta)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a quote, the price currency is left empty.
func (q *Quote) UnmarshalJSON(data []byte) error {
	var j struct {
		Price *decimal.Decimal `json:"price"`
		Beta  *float64         `json:"beta"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*q = Quote{Beta: j.Beta}
	if j.Price != nil {
		q.Price = M(*j.Price, "")
	}
	return nil
}
