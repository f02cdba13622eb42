package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/model"
)

// InvestmentRepository provides data access methods for the investment table.
// It owns referential integrity between investments and their transactions:
// deleting an investment cascades to its transactions in a single database
// transaction.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// GetInvestments retrieves all investments, newest first.
// Returns an empty slice if none exist.
func (r *InvestmentRepository) GetInvestments() ([]model.Investment, error) {
	query := `
		SELECT id, type, symbol, name, current_price, created_at
		FROM investment
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, investment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// GetInvestmentsWithTransactions retrieves all investments together with the
// full transaction ledger grouped by investment ID, inside one database
// transaction. Reading both tables under a single snapshot means a
// concurrent investment+transaction creation can never surface a transaction
// group without its investment; valuation reads over a healthy ledger must
// not fail.
func (r *InvestmentRepository) GetInvestmentsWithTransactions() ([]model.Investment, map[string][]model.Transaction, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	rows, err := tx.Query(`
		SELECT id, type, symbol, name, current_price, created_at
		FROM investment
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query investment table: %w", err)
	}

	investments := []model.Investment{}
	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			rows.Close()
			return nil, nil, err
		}
		investments = append(investments, investment)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, fmt.Errorf("error iterating investment table: %w", err)
	}
	rows.Close()

	txRows, err := tx.Query(`
		SELECT id, investment_id, type, quantity, price, date, created_at
		FROM "transaction"
		ORDER BY investment_id ASC, date ASC, created_at ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transaction table: %w", err)
	}

	transactions, err := collectTransactions(txRows)
	txRows.Close()
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	grouped := make(map[string][]model.Transaction)
	for _, t := range transactions {
		grouped[t.InvestmentID] = append(grouped[t.InvestmentID], t)
	}

	return investments, grouped, nil
}

// GetInvestment retrieves a single investment by ID.
// Returns apperrors.ErrInvestmentNotFound if no such investment exists.
func (r *InvestmentRepository) GetInvestment(investmentID string) (model.Investment, error) {
	query := `
		SELECT id, type, symbol, name, current_price, created_at
		FROM investment
		WHERE id = ?
	`

	row := r.db.QueryRow(query, investmentID)

	investment, err := scanInvestment(row)
	if err == sql.ErrNoRows {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, err
	}

	return investment, nil
}

// InsertInvestment persists a new investment.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, investment *model.Investment) error {
	query := `
		INSERT INTO investment (id, type, symbol, name, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		investment.ID,
		investment.Type,
		nullableString(investment.Symbol),
		investment.Name,
		investment.CurrentPrice,
		investment.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// UpdateInvestment updates the mutable fields of an investment: type, symbol,
// name and current_price. Returns apperrors.ErrInvestmentNotFound if the
// investment does not exist.
func (r *InvestmentRepository) UpdateInvestment(ctx context.Context, investment *model.Investment) error {
	query := `
		UPDATE investment
		SET type = ?, symbol = ?, name = ?, current_price = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		investment.Type,
		nullableString(investment.Symbol),
		investment.Name,
		investment.CurrentPrice,
		investment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteInvestment removes an investment and all of its transactions in one
// database transaction: both succeed or neither does. Returns
// apperrors.ErrInvestmentNotFound if the investment does not exist and
// apperrors.ErrDataInconsistency if the cascade would leave orphaned
// transactions behind.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction" WHERE investment_id = ?`, investmentID); err != nil {
		return fmt.Errorf("failed to delete transactions for investment: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM investment WHERE id = ?`, investmentID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	// The cascade must not leave transactions referencing the removed investment.
	var orphans int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM "transaction" WHERE investment_id = ?`, investmentID,
	).Scan(&orphans); err != nil {
		return fmt.Errorf("failed to verify cascade deletion: %w", err)
	}
	if orphans > 0 {
		return fmt.Errorf("%w: %d orphaned transactions after deleting investment %s",
			apperrors.ErrDataInconsistency, orphans, investmentID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit investment deletion: %w", err)
	}

	return nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvestment(row scanner) (model.Investment, error) {
	var investment model.Investment
	var symbol sql.NullString
	var createdAtStr string

	err := row.Scan(
		&investment.ID,
		&investment.Type,
		&symbol,
		&investment.Name,
		&investment.CurrentPrice,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Investment{}, err
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to scan investment table results: %w", err)
	}

	investment.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to parse date: %w", err)
	}

	// Symbol is nullable
	if symbol.Valid {
		investment.Symbol = &symbol.String
	}

	return investment, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
