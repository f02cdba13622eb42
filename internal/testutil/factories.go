package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/invtrack/investment-tracker/internal/model"
)

// MakeID generates a random UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeInvestmentName generates a unique investment name with the given prefix.
func MakeInvestmentName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, rand.Intn(1000000)) //nolint:gosec // test data
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
// Example usage:
//
//	// Simple creation with defaults
//	investment := testutil.NewInvestment().Build(t, db)
//
//	// Customized investment
//	investment := testutil.NewInvestment().
//	    WithType("bond").
//	    WithSymbol("BND").
//	    WithCurrentPrice(150).
//	    Build(t, db)
type InvestmentBuilder struct {
	ID           string
	Type         string
	Symbol       *string
	Name         string
	CurrentPrice float64
}

// NewInvestment creates an InvestmentBuilder with sensible defaults.
func NewInvestment() *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:           MakeID(),
		Type:         "stock",
		Symbol:       nil,
		Name:         MakeInvestmentName("Test Investment"),
		CurrentPrice: 100.0,
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.ID = id
	return b
}

// WithType sets a custom type.
func (b *InvestmentBuilder) WithType(investmentType string) *InvestmentBuilder {
	b.Type = investmentType
	return b
}

// WithSymbol sets a custom symbol.
func (b *InvestmentBuilder) WithSymbol(symbol string) *InvestmentBuilder {
	b.Symbol = &symbol
	return b
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.Name = name
	return b
}

// WithCurrentPrice sets a custom current price.
func (b *InvestmentBuilder) WithCurrentPrice(price float64) *InvestmentBuilder {
	b.CurrentPrice = price
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	query := `
		INSERT INTO investment (id, type, symbol, name, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var symbol any
	if b.Symbol != nil {
		symbol = *b.Symbol
	}

	createdAt := time.Now().UTC()

	_, err := db.Exec(query, b.ID, b.Type, symbol, b.Name, b.CurrentPrice, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:           b.ID,
		Type:         b.Type,
		Symbol:       b.Symbol,
		Name:         b.Name,
		CurrentPrice: b.CurrentPrice,
		CreatedAt:    createdAt,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(investment.ID).
//	    WithType("sell").
//	    WithQuantity(5).
//	    WithPrice(120).
//	    WithDate("2024-03-10").
//	    Build(t, db)
type TransactionBuilder struct {
	ID           string
	InvestmentID string
	Type         string
	Quantity     float64
	Price        float64
	Date         time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(investmentID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		InvestmentID: investmentID,
		Type:         model.TransactionTypeBuy,
		Quantity:     10.0,
		Price:        100.0,
		Date:         time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

// WithType sets a custom type.
func (b *TransactionBuilder) WithType(transactionType string) *TransactionBuilder {
	b.Type = transactionType
	return b
}

// WithQuantity sets a custom quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets a custom price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithDate sets a custom date from a YYYY-MM-DD string.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(fmt.Sprintf("invalid test date %q: %v", date, err))
	}
	b.Date = parsed
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, investment_id, type, quantity, price, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()

	_, err := db.Exec(query,
		b.ID,
		b.InvestmentID,
		b.Type,
		b.Quantity,
		b.Price,
		b.Date.UTC().Format(time.RFC3339),
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		InvestmentID: b.InvestmentID,
		Type:         b.Type,
		Quantity:     b.Quantity,
		Price:        b.Price,
		Date:         b.Date.UTC(),
		CreatedAt:    createdAt,
	}
}

// Convenience functions

// CreateInvestment creates an investment with the given name and default values.
func CreateInvestment(t *testing.T, db *sql.DB, name string) model.Investment {
	t.Helper()
	return NewInvestment().WithName(name).Build(t, db)
}

// CreateBuy creates a buy transaction for the investment on the given date.
func CreateBuy(t *testing.T, db *sql.DB, investmentID, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(investmentID).WithDate(date).WithQuantity(quantity).WithPrice(price).Build(t, db)
}

// CreateSell creates a sell transaction for the investment on the given date.
func CreateSell(t *testing.T, db *sql.DB, investmentID, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(investmentID).
		WithType(model.TransactionTypeSell).
		WithDate(date).
		WithQuantity(quantity).
		WithPrice(price).
		Build(t, db)
}
