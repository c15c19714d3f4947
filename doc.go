// Package pnl consolidates the positions a trader holds at several brokers
// into a single, consistent view of the portfolio.
//
// The core functionalities include:
//   - Position Aggregation: merging the positions of a symbol held at several
//     brokers, with a quantity-weighted average price.
//   - Broker Summaries: one row per broker with totals, win/loss counts, and
//     its best and worst positions.
//   - Portfolio Totals: grand totals and the best and worst brokers.
//   - Risk Analysis: exposure, sector concentration, beta, a cross-sectional
//     Value-at-Risk and a Sharpe-like ratio.
//
// All of them are pure functions of a Snapshot, the read-only input of an
// evaluation cycle. Evaluate runs them all and returns a Report. Nothing is
// kept between two evaluations.
//
// Percentages are always the P&L over the cost basis before P&L
// (value − pnl), and any ratio over a zero denominator is 0.
//
// Money amounts are exact decimals, so that folding positions in any number
// of steps gives the same result as a single pass.
//
// This package serves as the foundational logic for the `mbp` command-line
// tool.
package pnl
