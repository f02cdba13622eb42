package request

// CreateTransactionRequest is the payload for creating a transaction.
// Date is an ISO-8601 timestamp string (RFC 3339 or YYYY-MM-DD).
// Transactions are immutable once created; there is no update request.
type CreateTransactionRequest struct {
	InvestmentID string  `json:"investment_id"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
	Date         string  `json:"date"`
}
