package pnl

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// UnknownSector labels positions without a sector.
	UnknownSector = "Unknown"
	// DefaultBeta is used for symbols the market feed has no beta for.
	DefaultBeta = 1.0
	// z95 is the one-tailed 95% z-score of the normal distribution.
	z95 = 1.645
)

// RiskSnapshot is a simplified, cross-sectional risk view of the positions.
type RiskSnapshot struct {
	PositionValue       Money
	PortfolioValue      Money
	PositionRiskPercent Percent
	CorrelationRisk     float64 // coarse proxy: 0.8 for ≤2 sectors, else 0.3
	SectorExposure      map[string]Money
	MaxDrawdownPercent  Percent // current drawdown, ≤ 0
	ValueAtRisk         Money   // 95% one-tailed
	Beta                float64
	MeanReturn          float64
	Volatility          float64 // population std dev of position returns
	SharpeRatio         float64
}

// Sectors returns the number of distinct sectors.
func (r RiskSnapshot) Sectors() int { return len(r.SectorExposure) }

// AnalyzeRisk computes the risk snapshot of positions.
//
// Each position's simple return is pnl / (quantity × avgPrice). Volatility is
// the population standard deviation of those returns across positions, and
// the Sharpe ratio divides their mean by the volatility, floored to 1 when
// the volatility is zero. Ratios over a zero portfolio value are 0.
func AnalyzeRisk(positions []BrokerPosition, portfolioValue Money, market map[string]Quote) RiskSnapshot {
	r := RiskSnapshot{
		PortfolioValue: portfolioValue,
		SectorExposure: make(map[string]Money),
	}

	var totalPnL Money
	values := make([]float64, 0, len(positions))
	betas := make([]float64, 0, len(positions))
	returns := make([]float64, 0, len(positions))
	for _, p := range positions {
		v := p.Value()
		r.PositionValue = r.PositionValue.Add(v)
		totalPnL = totalPnL.Add(p.PnL)

		sector := p.Sector
		if sector == "" {
			sector = UnknownSector
		}
		r.SectorExposure[sector] = r.SectorExposure[sector].Add(v)

		beta := DefaultBeta
		if q, ok := market[p.Symbol]; ok && q.Beta != nil {
			beta = *q.Beta
		}
		values = append(values, v.AsFloat())
		betas = append(betas, beta)

		var ret float64
		if cost := p.Cost(); !cost.IsZero() {
			ret = p.PnL.value.Div(cost.value).InexactFloat64()
		}
		returns = append(returns, ret)
	}

	if !r.PositionValue.IsZero() {
		r.Beta = finite(stat.Mean(betas, values))
	}

	r.CorrelationRisk = 0.3
	if len(r.SectorExposure) <= 2 {
		r.CorrelationRisk = 0.8
	}

	if len(returns) > 0 {
		mean, std := stat.PopMeanStdDev(returns, nil)
		r.MeanReturn, r.Volatility = finite(mean), finite(std)
	}
	vol := r.Volatility
	if vol == 0 {
		vol = 1
	}
	r.SharpeRatio = r.MeanReturn / vol
	r.ValueAtRisk = portfolioValue.Scale(r.Volatility * z95)

	r.MaxDrawdownPercent = min(0, ratio(totalPnL, portfolioValue))
	r.PositionRiskPercent = ratio(totalPnL.Abs(), portfolioValue)
	return r
}

// finite maps NaN and infinities to 0.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
