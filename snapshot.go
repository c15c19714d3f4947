package pnl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Snapshot files inside a snapshot folder.
const (
	PositionsFile = "positions.jsonl"
	BrokersFile   = "brokers.yaml"
	MarketFile    = "market.json"
)

// Snapshot is the read-only input of one evaluation cycle.
type Snapshot struct {
	AsOf      time.Time
	Currency  string
	Positions []BrokerPosition
	Brokers   []BrokerConnection
	Market    map[string]Quote
	// PortfolioValue is the value the risk ratios refer to. When zero, the
	// value of the positions is used.
	PortfolioValue Money
}

// LoadSnapshot reads a snapshot folder. The positions and brokers files are
// required, a missing market file yields empty market data.
// AsOf is the modification time of the positions file.
func LoadSnapshot(dir, currency string) (*Snapshot, error) {
	s := &Snapshot{Currency: currency, Market: map[string]Quote{}}

	name := filepath.Join(dir, PositionsFile)
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open positions: %w", err)
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil {
		s.AsOf = info.ModTime()
	}
	if s.Positions, err = DecodePositions(f, currency); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	name = filepath.Join(dir, BrokersFile)
	b, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open brokers: %w", err)
	}
	defer b.Close()
	if s.Brokers, err = DecodeBrokers(b); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	name = filepath.Join(dir, MarketFile)
	m, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open market data: %w", err)
	}
	defer m.Close()
	if s.Market, err = DecodeMarket(m, currency); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Symbols returns the distinct symbols of the snapshot positions, in order of
// first appearance.
func (s *Snapshot) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, p := range s.Positions {
		if !seen[p.Symbol] {
			seen[p.Symbol] = true
			symbols = append(symbols, p.Symbol)
		}
	}
	return symbols
}

// portfolioValue returns the explicit portfolio value or the positions value.
func (s *Snapshot) portfolioValue() Money {
	if !s.PortfolioValue.IsZero() {
		return s.PortfolioValue
	}
	total := M(0, s.Currency)
	for _, p := range s.Positions {
		total = total.Add(p.Value())
	}
	return total
}
