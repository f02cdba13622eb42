package testutil

import (
	"database/sql"
	"testing"

	"github.com/invtrack/investment-tracker/internal/repository"
	"github.com/invtrack/investment-tracker/internal/service"
)

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)

	return service.NewInvestmentService(
		investmentRepo,
		service.NewInvestmentLocks(),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		investmentRepo,
		service.NewInvestmentLocks(),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewPortfolioService(
		investmentRepo,
		snapshotRepo,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}
