package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invtrack/investment-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Transactions are immutable: they are inserted on creation and removed only
// as part of an investment's cascade deletion.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InsertTransaction persists a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, transaction *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, investment_id, type, quantity, price, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.InvestmentID,
		transaction.Type,
		transaction.Quantity,
		transaction.Price,
		transaction.Date.UTC().Format(time.RFC3339),
		transaction.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransactionsByInvestment retrieves all transactions for one investment,
// sorted by date ascending with creation time as the tie-breaker. This is the
// ordering the valuation engine expects.
func (r *TransactionRepository) GetTransactionsByInvestment(investmentID string) ([]model.Transaction, error) {
	query := `
		SELECT id, investment_id, type, quantity, price, date, created_at
		FROM "transaction"
		WHERE investment_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetTransactionResponses retrieves transactions enriched with the owning
// investment's name and symbol, sorted by date ascending. If investmentID is
// empty, transactions for all investments are returned.
func (r *TransactionRepository) GetTransactionResponses(investmentID string) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.investment_id, i.name, i.symbol, t.type, t.quantity, t.price, t.date
		FROM "transaction" t
		JOIN investment i ON t.investment_id = i.id
	`

	var args []any

	if investmentID == "" {
		query += `
		ORDER BY t.date ASC, t.created_at ASC
		`
	} else {
		query += `
		WHERE t.investment_id = ?
		ORDER BY t.date ASC, t.created_at ASC
		`
		args = append(args, investmentID)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	responses := []model.TransactionResponse{}

	for rows.Next() {
		var dateStr string
		var symbol sql.NullString
		var t model.TransactionResponse

		err := rows.Scan(
			&t.ID,
			&t.InvestmentID,
			&t.InvestmentName,
			&symbol,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&dateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		// InvestmentSymbol is nullable
		if symbol.Valid {
			t.InvestmentSymbol = &symbol.String
		}

		responses = append(responses, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return responses, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&t.InvestmentID,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&dateStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
