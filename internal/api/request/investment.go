package request

// CreateInvestmentRequest is the payload for creating an investment.
// Symbol is optional and may be null.
type CreateInvestmentRequest struct {
	Type         string  `json:"type"`
	Symbol       *string `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
}

// UpdateInvestmentRequest is the payload for updating an investment.
// All fields are optional; only type, symbol, name and current_price are mutable.
type UpdateInvestmentRequest struct {
	Type         *string  `json:"type,omitempty"`
	Symbol       *string  `json:"symbol,omitempty"`
	Name         *string  `json:"name,omitempty"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
}
