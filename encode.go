package pnl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Positions are persisted as JSON Lines, one position per line, so that a
// positions file stays human-readable and git-friendly.
//
// Brokers are a small, hand-edited registry, persisted as YAML.
//
// Market data is a single JSON object mapping symbols to quotes.

// ErrDuplicateBroker is returned when the broker registry declares the same id twice.
var ErrDuplicateBroker = errors.New("duplicate broker")

// DecodePositions reads a JSONL stream of positions, amounts are in currency.
// Empty lines are ignored. Errors report the line number.
func DecodePositions(r io.Reader, currency string) ([]BrokerPosition, error) {
	var positions []BrokerPosition
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		p, err := decodePosition(line, currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		positions = append(positions, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read positions: %w", err)
	}
	return positions, nil
}

// EncodePositions writes positions as JSONL in the canonical form: sorted by
// broker then symbol, with a fixed field order.
func EncodePositions(w io.Writer, positions []BrokerPosition) error {
	sorted := slices.Clone(positions)
	slices.SortStableFunc(sorted, func(a, b BrokerPosition) int {
		if c := strings.Compare(a.BrokerID, b.BrokerID); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})

	for _, p := range sorted {
		line, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("cannot encode position %s@%s: %w", p.Symbol, p.BrokerID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBrokers reads the YAML broker registry.
func DecodeBrokers(r io.Reader) ([]BrokerConnection, error) {
	var brokers []BrokerConnection
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&brokers); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode brokers: %w", err)
	}

	seen := make(map[string]bool, len(brokers))
	for i, b := range brokers {
		if b.ID == "" {
			return nil, fmt.Errorf("broker #%d: missing id", i+1)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBroker, b.ID)
		}
		seen[b.ID] = true
	}
	return brokers, nil
}

// EncodeBrokers writes the broker registry as YAML.
func EncodeBrokers(w io.Writer, brokers []BrokerConnection) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(brokers); err != nil {
		return fmt.Errorf("cannot encode brokers: %w", err)
	}
	return enc.Close()
}

// DecodeMarket reads market data, prices are in currency.
func DecodeMarket(r io.Reader, currency string) (map[string]Quote, error) {
	market := make(map[string]Quote)
	if err := json.NewDecoder(r).Decode(&market); err != nil {
		return nil, fmt.Errorf("cannot decode market data: %w", err)
	}
	for symbol, q := range market {
		q.Price = q.Price.InCurrency(currency)
		market[symbol] = q
	}
	return market, nil
}

// EncodeMarket writes market data as an indented JSON object, symbols sorted.
func EncodeMarket(w io.Writer, market map[string]Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(market)
}
