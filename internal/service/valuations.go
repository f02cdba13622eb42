package service

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/model"
	"github.com/invtrack/investment-tracker/internal/valuation"
)

// valueInvestments derives the full response row for every investment from its
// transaction history. Valuations are independent per investment, so they run
// concurrently with a bounded group; each goroutine writes only its own index.
//
// Returns apperrors.ErrDataInconsistency if the transaction groups contain an
// investment ID that is not in the investment list: that means the ledger
// holds transactions for an investment that no longer exists.
func valueInvestments(investments []model.Investment, transactionsByInvestment map[string][]model.Transaction) ([]model.InvestmentResponse, error) {
	known := make(map[string]bool, len(investments))
	for _, investment := range investments {
		known[investment.ID] = true
	}
	for investmentID := range transactionsByInvestment {
		if !known[investmentID] {
			return nil, fmt.Errorf("%w: transactions reference unknown investment %s",
				apperrors.ErrDataInconsistency, investmentID)
		}
	}

	responses := make([]model.InvestmentResponse, len(investments))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, investment := range investments {
		i, investment := i, investment
		g.Go(func() error {
			metrics, err := valuation.Compute(transactionsByInvestment[investment.ID], investment.CurrentPrice)
			if err != nil {
				return fmt.Errorf("failed to value investment %s: %w", investment.ID, err)
			}

			responses[i] = model.InvestmentResponse{
				ID:               investment.ID,
				Type:             investment.Type,
				Symbol:           investment.Symbol,
				Name:             investment.Name,
				Quantity:         metrics.Quantity,
				AvgPurchasePrice: metrics.AvgPurchasePrice,
				CurrentPrice:     investment.CurrentPrice,
				CostBasis:        metrics.CostBasis,
				CurrentValue:     metrics.CurrentValue,
				UnrealizedPL:     metrics.UnrealizedPL,
				PLPercent:        metrics.PLPercent,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}
