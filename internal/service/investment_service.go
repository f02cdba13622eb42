package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invtrack/investment-tracker/internal/api/request"
	"github.com/invtrack/investment-tracker/internal/model"
	"github.com/invtrack/investment-tracker/internal/repository"
)

// InvestmentService handles investment-related business logic operations.
// Listing returns investments with their derived valuation figures populated;
// mutations are serialized per investment through the shared lock table.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	locks          *InvestmentLocks
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependency.
func NewInvestmentService(
	investmentRepo *repository.InvestmentRepository,
	locks *InvestmentLocks,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		locks:          locks,
	}
}

// GetInvestments retrieves all investments with derived fields (quantity,
// average purchase price, current value, unrealized P/L) computed from each
// investment's full transaction history. Investments and their transactions
// are read under one database snapshot so concurrent writes cannot surface a
// half-visible ledger.
func (s *InvestmentService) GetInvestments() ([]model.InvestmentResponse, error) {
	investments, transactionsByInvestment, err := s.investmentRepo.GetInvestmentsWithTransactions()
	if err != nil {
		return nil, err
	}

	return valueInvestments(investments, transactionsByInvestment)
}

// CreateInvestment creates a new investment from a validated request.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (*model.Investment, error) {
	investment := &model.Investment{
		ID:           uuid.New().String(),
		Type:         req.Type,
		Symbol:       req.Symbol,
		Name:         req.Name,
		CurrentPrice: req.CurrentPrice,
		CreatedAt:    time.Now(),
	}

	if err := s.investmentRepo.InsertInvestment(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	return investment, nil
}

// UpdateInvestment applies the provided fields to an existing investment.
// Only type, symbol, name and current_price are mutable; derived figures are
// never stored, so nothing else can drift.
// Returns apperrors.ErrInvestmentNotFound if the investment does not exist.
func (s *InvestmentService) UpdateInvestment(ctx context.Context, investmentID string, req request.UpdateInvestmentRequest) (*model.Investment, error) {
	unlock := s.locks.Lock(investmentID)
	defer unlock()

	investment, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		investment.Type = *req.Type
	}
	if req.Symbol != nil {
		investment.Symbol = req.Symbol
	}
	if req.Name != nil {
		investment.Name = *req.Name
	}
	if req.CurrentPrice != nil {
		investment.CurrentPrice = *req.CurrentPrice
	}

	if err := s.investmentRepo.UpdateInvestment(ctx, &investment); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}

	return &investment, nil
}

// DeleteInvestment removes an investment and all of its transactions
// atomically. Returns apperrors.ErrInvestmentNotFound if the investment does
// not exist.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	unlock := s.locks.Lock(investmentID)
	defer unlock()

	return s.investmentRepo.DeleteInvestment(ctx, investmentID)
}
