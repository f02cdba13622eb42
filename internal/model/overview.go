package model

import "time"

// OverviewTotals holds the portfolio-wide sums across all investments.
type OverviewTotals struct {
	CurrentValue float64 `json:"current_value"`
	CostBasis    float64 `json:"cost_basis"`
	UnrealizedPL float64 `json:"unrealized_pl"`
	PLPercent    float64 `json:"pl_percent"`
}

// TypeBreakdown holds the aggregate figures for a single investment type
// (stock, bond, etc.).
type TypeBreakdown struct {
	CurrentValue float64 `json:"current_value"`
	UnrealizedPL float64 `json:"unrealized_pl"`
	PLPercent    float64 `json:"pl_percent"`
}

// Overview represents the portfolio-wide overview: totals across all
// investments, a breakdown per investment type, and the per-investment rows
// the totals were folded from.
type Overview struct {
	Totals       OverviewTotals           `json:"totals"`
	ByType       map[string]TypeBreakdown `json:"by_type"`
	ByInvestment []InvestmentResponse     `json:"by_investment"`
}

// OverviewSnapshot represents a point-in-time record of the portfolio totals,
// written by the scheduled snapshot job. Snapshots form the portfolio value
// time series served by the history endpoint.
type OverviewSnapshot struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	CurrentValue float64   `json:"current_value"`
	CostBasis    float64   `json:"cost_basis"`
	UnrealizedPL float64   `json:"unrealized_pl"`
	PLPercent    float64   `json:"pl_percent"`
	CalculatedAt time.Time `json:"calculatedAt,omitempty"`
}
