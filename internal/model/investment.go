package model

import "time"

// Investment represents an investment as stored in the database.
// Symbol is optional; a nil pointer maps to NULL in the database and
// to JSON null at the API boundary.
type Investment struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Symbol       *string   `json:"symbol"`
	Name         string    `json:"name"`
	CurrentPrice float64   `json:"current_price"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// InvestmentResponse represents an investment enriched with derived valuation
// figures for API responses. Quantity, average purchase price, cost basis and
// the profit/loss fields are computed from the transaction history on every
// read; they are never stored.
type InvestmentResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Symbol           *string `json:"symbol"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	AvgPurchasePrice float64 `json:"avg_purchase_price"`
	CurrentPrice     float64 `json:"current_price"`
	CostBasis        float64 `json:"cost_basis"`
	CurrentValue     float64 `json:"current_value"`
	UnrealizedPL     float64 `json:"unrealized_pl"`
	PLPercent        float64 `json:"pl_percent"`
}
