package model

import "time"

// Transaction types.
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction represents a buy or sell transaction for an investment.
// Used internally for calculations and data processing. Transactions are
// immutable once created and belong to exactly one investment.
type Transaction struct {
	ID           string    `json:"id"`
	InvestmentID string    `json:"investment_id"`
	Type         string    `json:"type"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for API
// responses. Includes the owning investment's name and symbol.
type TransactionResponse struct {
	ID               string    `json:"id"`
	InvestmentID     string    `json:"investment_id"`
	InvestmentName   string    `json:"investment_name"`
	InvestmentSymbol *string   `json:"investment_symbol"`
	Type             string    `json:"type"`
	Quantity         float64   `json:"quantity"`
	Price            float64   `json:"price"`
	Date             time.Time `json:"date"`
}
