package pnl

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Report is everything derived from one snapshot. It is built from scratch
// on every evaluation and never updated in place.
type Report struct {
	AsOf      time.Time
	Currency  string
	Positions []AggregatedPosition
	Brokers   []BrokerPnLSummary
	Totals    PortfolioMetrics
	Risk      RiskSnapshot
}

// Evaluate runs the consolidation pipeline on s.
// Evaluating the same snapshot twice yields identical reports.
func Evaluate(s *Snapshot) *Report {
	brokers := Summarize(s.Positions, s.Brokers)
	return &Report{
		AsOf:      s.AsOf,
		Currency:  s.Currency,
		Positions: Aggregate(s.Positions),
		Brokers:   brokers,
		Totals:    Totalize(brokers),
		Risk:      AnalyzeRisk(s.Positions, s.portfolioValue(), s.Market),
	}
}

// EvaluateConcurrently is Evaluate with the components that only depend on
// the snapshot running in parallel. It returns ctx's error if ctx is done
// before the report is complete.
func EvaluateConcurrently(ctx context.Context, s *Snapshot) (*Report, error) {
	r := &Report{AsOf: s.AsOf, Currency: s.Currency}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Positions = Aggregate(s.Positions)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Brokers = Summarize(s.Positions, s.Brokers)
		r.Totals = Totalize(r.Brokers)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Risk = AnalyzeRisk(s.Positions, s.portfolioValue(), s.Market)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns the aggregate of symbol.
func (r *Report) Lookup(symbol string) (AggregatedPosition, bool) {
	for _, a := range r.Positions {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return AggregatedPosition{}, false
}

// SectorWeight is the share of the position value held in one sector.
type SectorWeight struct {
	Sector string
	Value  Money
	Weight Percent
}

// SectorWeights returns the sector exposure as a share of the position value,
// largest first, ties by sector name.
func (r *Report) SectorWeights() []SectorWeight {
	weights := make([]SectorWeight, 0, len(r.Risk.SectorExposure))
	for sector, v := range r.Risk.SectorExposure {
		weights = append(weights, SectorWeight{
			Sector: sector,
			Value:  v,
			Weight: ratio(v, r.Risk.PositionValue),
		})
	}
	sort.Slice(weights, func(i, j int) bool {
		if !weights[i].Value.Equal(weights[j].Value) {
			return weights[i].Value.GreaterThan(weights[j].Value)
		}
		return weights[i].Sector < weights[j].Sector
	})
	return weights
}

// Concentration returns the Herfindahl-Hirschman index of the aggregated
// position values (between 0 and 1) and the effective number of holdings
// (1/HHI). Both are 0 when there is no value.
func (r *Report) Concentration() (hhi, effective float64) {
	var total Money
	for _, a := range r.Positions {
		total = total.Add(a.TotalValue)
	}
	if total.IsZero() {
		return 0, 0
	}
	for _, a := range r.Positions {
		w := ratio(a.TotalValue, total).Ratio()
		hhi += w * w
	}
	if hhi == 0 {
		return 0, 0
	}
	return hhi, 1 / hhi
}
