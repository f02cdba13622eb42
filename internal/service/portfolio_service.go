package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invtrack/investment-tracker/internal/model"
	"github.com/invtrack/investment-tracker/internal/repository"
)

// PortfolioService aggregates per-investment valuations into the
// portfolio-wide overview and maintains the overview snapshot time series.
type PortfolioService struct {
	investmentRepo *repository.InvestmentRepository
	snapshotRepo   *repository.SnapshotRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	investmentRepo *repository.InvestmentRepository,
	snapshotRepo *repository.SnapshotRepository,
) *PortfolioService {
	return &PortfolioService{
		investmentRepo: investmentRepo,
		snapshotRepo:   snapshotRepo,
	}
}

// typeAccumulator carries the running sums for one investment type. Cost
// basis is needed to compute the group's P/L percentage even though the
// by-type breakdown does not expose it.
type typeAccumulator struct {
	currentValue float64
	costBasis    float64
	unrealizedPL float64
}

// GetOverview computes the portfolio-wide overview: totals across all
// investments and a breakdown per investment type, along with the
// per-investment rows they were folded from. The result is a pure function of
// a single ledger snapshot at the moment of the call; nothing is cached.
func (s *PortfolioService) GetOverview() (*model.Overview, error) {
	investments, transactionsByInvestment, err := s.investmentRepo.GetInvestmentsWithTransactions()
	if err != nil {
		return nil, err
	}

	byInvestment, err := valueInvestments(investments, transactionsByInvestment)
	if err != nil {
		return nil, err
	}

	totals := model.OverviewTotals{}
	accumulators := make(map[string]*typeAccumulator)

	for _, row := range byInvestment {
		totals.CurrentValue += row.CurrentValue
		totals.CostBasis += row.CostBasis
		totals.UnrealizedPL += row.UnrealizedPL

		acc, ok := accumulators[row.Type]
		if !ok {
			acc = &typeAccumulator{}
			accumulators[row.Type] = acc
		}
		acc.currentValue += row.CurrentValue
		acc.costBasis += row.CostBasis
		acc.unrealizedPL += row.UnrealizedPL
	}

	if totals.CostBasis > 0.0 {
		totals.PLPercent = totals.UnrealizedPL / totals.CostBasis * 100.0
	}

	byType := make(map[string]model.TypeBreakdown, len(accumulators))
	for investmentType, acc := range accumulators {
		breakdown := model.TypeBreakdown{
			CurrentValue: acc.currentValue,
			UnrealizedPL: acc.unrealizedPL,
		}
		if acc.costBasis > 0.0 {
			breakdown.PLPercent = acc.unrealizedPL / acc.costBasis * 100.0
		}
		byType[investmentType] = breakdown
	}

	return &model.Overview{
		Totals:       totals,
		ByType:       byType,
		ByInvestment: byInvestment,
	}, nil
}

// GetHistory retrieves recorded overview snapshots within the inclusive date
// range, oldest first.
func (s *PortfolioService) GetHistory(startDate, endDate time.Time) ([]model.OverviewSnapshot, error) {
	return s.snapshotRepo.GetSnapshots(startDate, endDate)
}

// RecordSnapshot computes the current overview and stores its totals as the
// snapshot for the given date. Recording twice for the same date replaces the
// earlier snapshot.
func (s *PortfolioService) RecordSnapshot(ctx context.Context, date time.Time) (*model.OverviewSnapshot, error) {
	overview, err := s.GetOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to compute overview for snapshot: %w", err)
	}

	snapshot := &model.OverviewSnapshot{
		ID:           uuid.New().String(),
		Date:         date.UTC().Truncate(24 * time.Hour),
		CurrentValue: overview.Totals.CurrentValue,
		CostBasis:    overview.Totals.CostBasis,
		UnrealizedPL: overview.Totals.UnrealizedPL,
		PLPercent:    overview.Totals.PLPercent,
		CalculatedAt: time.Now(),
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}
