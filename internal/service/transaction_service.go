package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invtrack/investment-tracker/internal/api/request"
	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/model"
	"github.com/invtrack/investment-tracker/internal/repository"
	"github.com/invtrack/investment-tracker/internal/validation"
	"github.com/invtrack/investment-tracker/internal/valuation"
)

// quantityEpsilon absorbs accumulated float64 error on fractional positions:
// after partial sells the stored remainder can sit one ULP below the exact
// value, and selling exactly what is held must still pass the check.
const quantityEpsilon = 1e-9

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	investmentRepo  *repository.InvestmentRepository
	locks           *InvestmentLocks
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	investmentRepo *repository.InvestmentRepository,
	locks *InvestmentLocks,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
		locks:           locks,
	}
}

// GetTransactions retrieves transactions enriched with investment name and
// symbol, ordered by date ascending. If investmentID is empty, transactions
// for all investments are returned. An unknown investment ID yields an empty
// sequence, not an error: after cascade deletion the history is simply gone.
func (s *TransactionService) GetTransactions(investmentID string) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactionResponses(investmentID)
}

// CreateTransaction creates a new buy or sell transaction from a validated
// request.
//
// A sell is checked against the quantity held at the transaction's own
// timestamp, computed over the existing history in date order (not insertion
// order): a backdated sell may not exceed the position as it stood on that
// date. The check and the insert run under the investment's lock so that
// concurrent sells cannot both pass against a stale position.
//
// Returns apperrors.ErrInvestmentNotFound if the investment does not exist
// and apperrors.ErrInsufficientQuantity if a sell exceeds the held quantity;
// in both cases nothing is persisted.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	transactionDate, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.InvestmentID)
	defer unlock()

	if _, err := s.investmentRepo.GetInvestment(req.InvestmentID); err != nil {
		return nil, err
	}

	if req.Type == model.TransactionTypeSell {
		existing, err := s.transactionRepo.GetTransactionsByInvestment(req.InvestmentID)
		if err != nil {
			return nil, err
		}

		available, err := valuation.QuantityAt(existing, transactionDate)
		if err != nil {
			return nil, err
		}

		if req.Quantity > available+quantityEpsilon {
			return nil, fmt.Errorf("%w: requested %g, held %g at %s",
				apperrors.ErrInsufficientQuantity,
				req.Quantity, available, transactionDate.Format("2006-01-02"))
		}
	}

	transaction := &model.Transaction{
		ID:           uuid.New().String(),
		InvestmentID: req.InvestmentID,
		Type:         req.Type,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Date:         transactionDate,
		CreatedAt:    time.Now(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}
