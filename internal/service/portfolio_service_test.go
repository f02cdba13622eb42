package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/invtrack/investment-tracker/internal/api/request"
	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/testutil"
)

// TestPortfolioService_GetOverview tests the portfolio-wide aggregation.
//
// WHY: The overview is the dashboard's single source of truth. Its totals
// must be exactly the sums of the per-investment rows, and the by-type
// breakdown must partition those same figures without loss.
func TestPortfolioService_GetOverview(t *testing.T) {
	t.Run("empty portfolio yields zero totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if overview.Totals.CurrentValue != 0 || overview.Totals.UnrealizedPL != 0 || overview.Totals.PLPercent != 0 {
			t.Errorf("Expected zero totals, got %+v", overview.Totals)
		}
		if len(overview.ByType) != 0 {
			t.Errorf("Expected empty by-type breakdown, got %d entries", len(overview.ByType))
		}
		if len(overview.ByInvestment) != 0 {
			t.Errorf("Expected empty by-investment rows, got %d", len(overview.ByInvestment))
		}
	})

	t.Run("totals equal sums over per-investment rows", func(t *testing.T) {
		// Setup: two stocks and a bond with known positions
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		stock1 := testutil.NewInvestment().WithType("stock").WithCurrentPrice(150).Build(t, db)
		testutil.CreateBuy(t, db, stock1.ID, "2024-01-10", 10, 100) // value 1500, cost 1000

		stock2 := testutil.NewInvestment().WithType("stock").WithCurrentPrice(50).Build(t, db)
		testutil.CreateBuy(t, db, stock2.ID, "2024-01-10", 20, 60) // value 1000, cost 1200

		bond := testutil.NewInvestment().WithType("bond").WithCurrentPrice(102).Build(t, db)
		testutil.CreateBuy(t, db, bond.ID, "2024-01-10", 5, 100) // value 510, cost 500

		// Execute
		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("Failed to compute overview: %v", err)
		}

		// Assert totals
		if !approxEqual(overview.Totals.CurrentValue, 3010) {
			t.Errorf("Expected total value 3010, got %g", overview.Totals.CurrentValue)
		}
		if !approxEqual(overview.Totals.CostBasis, 2700) {
			t.Errorf("Expected total cost basis 2700, got %g", overview.Totals.CostBasis)
		}
		if !approxEqual(overview.Totals.UnrealizedPL, 310) {
			t.Errorf("Expected total unrealized P/L 310, got %g", overview.Totals.UnrealizedPL)
		}
		if !approxEqual(overview.Totals.PLPercent, 310.0/2700.0*100.0) {
			t.Errorf("Expected P/L percent %.4f, got %.4f", 310.0/2700.0*100.0, overview.Totals.PLPercent)
		}

		// Totals must also equal the fold over the returned rows
		var sumValue, sumPL float64
		for _, row := range overview.ByInvestment {
			sumValue += row.CurrentValue
			sumPL += row.UnrealizedPL
		}
		if !approxEqual(sumValue, overview.Totals.CurrentValue) {
			t.Errorf("Row value sum %g does not match totals %g", sumValue, overview.Totals.CurrentValue)
		}
		if !approxEqual(sumPL, overview.Totals.UnrealizedPL) {
			t.Errorf("Row P/L sum %g does not match totals %g", sumPL, overview.Totals.UnrealizedPL)
		}
	})

	t.Run("groups breakdown by investment type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		stock1 := testutil.NewInvestment().WithType("stock").WithCurrentPrice(150).Build(t, db)
		testutil.CreateBuy(t, db, stock1.ID, "2024-01-10", 10, 100)

		stock2 := testutil.NewInvestment().WithType("stock").WithCurrentPrice(50).Build(t, db)
		testutil.CreateBuy(t, db, stock2.ID, "2024-01-10", 20, 60)

		bond := testutil.NewInvestment().WithType("bond").WithCurrentPrice(102).Build(t, db)
		testutil.CreateBuy(t, db, bond.ID, "2024-01-10", 5, 100)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("Failed to compute overview: %v", err)
		}

		if len(overview.ByType) != 2 {
			t.Fatalf("Expected 2 type groups, got %d", len(overview.ByType))
		}

		stocks, ok := overview.ByType["stock"]
		if !ok {
			t.Fatal("Expected a 'stock' group")
		}
		if !approxEqual(stocks.CurrentValue, 2500) {
			t.Errorf("Expected stock value 2500, got %g", stocks.CurrentValue)
		}
		if !approxEqual(stocks.UnrealizedPL, 300) {
			t.Errorf("Expected stock P/L 300, got %g", stocks.UnrealizedPL)
		}
		if !approxEqual(stocks.PLPercent, 300.0/2200.0*100.0) {
			t.Errorf("Expected stock P/L percent %.4f, got %.4f", 300.0/2200.0*100.0, stocks.PLPercent)
		}

		bonds, ok := overview.ByType["bond"]
		if !ok {
			t.Fatal("Expected a 'bond' group")
		}
		if !approxEqual(bonds.CurrentValue, 510) {
			t.Errorf("Expected bond value 510, got %g", bonds.CurrentValue)
		}
		if !approxEqual(bonds.UnrealizedPL, 10) {
			t.Errorf("Expected bond P/L 10, got %g", bonds.UnrealizedPL)
		}
	})

	t.Run("overview stays consistent during concurrent creation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		investSvc := testutil.NewTestInvestmentService(t, db)
		txSvc := testutil.NewTestTransactionService(t, db)

		writerErr := make(chan error, 1)
		done := make(chan struct{})

		go func() {
			defer close(done)
			for i := 0; i < 25; i++ {
				investment, err := investSvc.CreateInvestment(context.Background(), request.CreateInvestmentRequest{
					Type:         "stock",
					Name:         testutil.MakeInvestmentName("Churn"),
					CurrentPrice: 100,
				})
				if err != nil {
					writerErr <- err
					return
				}
				if _, err := txSvc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
					InvestmentID: investment.ID,
					Type:         "buy",
					Quantity:     10,
					Price:        100,
					Date:         "2024-01-10",
				}); err != nil {
					writerErr <- err
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				select {
				case err := <-writerErr:
					t.Fatalf("Writer failed: %v", err)
				default:
				}
				return
			default:
				if _, err := svc.GetOverview(); err != nil {
					t.Fatalf("Overview of a healthy ledger failed: %v", err)
				}
			}
		}
	})

	t.Run("zero cost basis yields zero percent", func(t *testing.T) {
		// An investment with no transactions contributes nothing; the percent
		// guard must not divide by zero.
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		testutil.NewInvestment().WithType("stock").WithCurrentPrice(150).Build(t, db)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("Failed to compute overview: %v", err)
		}

		if overview.Totals.PLPercent != 0 {
			t.Errorf("Expected zero total percent, got %g", overview.Totals.PLPercent)
		}
		stocks := overview.ByType["stock"]
		if stocks.PLPercent != 0 {
			t.Errorf("Expected zero stock percent, got %g", stocks.PLPercent)
		}
	})
}

// TestPortfolioService_Snapshots tests snapshot recording and history
// retrieval.
func TestPortfolioService_Snapshots(t *testing.T) {
	t.Run("records snapshot with overview totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		investment := testutil.NewInvestment().WithCurrentPrice(150).Build(t, db)
		testutil.CreateBuy(t, db, investment.ID, "2024-01-10", 10, 100)

		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		snapshot, err := svc.RecordSnapshot(context.Background(), date)
		if err != nil {
			t.Fatalf("Failed to record snapshot: %v", err)
		}

		if !approxEqual(snapshot.CurrentValue, 1500) {
			t.Errorf("Expected snapshot value 1500, got %g", snapshot.CurrentValue)
		}
		if !approxEqual(snapshot.UnrealizedPL, 500) {
			t.Errorf("Expected snapshot P/L 500, got %g", snapshot.UnrealizedPL)
		}

		history, err := svc.GetHistory(date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 snapshot in history, got %d", len(history))
		}
		if !history[0].Date.Equal(date) {
			t.Errorf("Expected snapshot date %v, got %v", date, history[0].Date)
		}
	})

	t.Run("recording the same date replaces the snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		investSvc := testutil.NewTestInvestmentService(t, db)
		investment := testutil.NewInvestment().WithCurrentPrice(100).Build(t, db)
		testutil.CreateBuy(t, db, investment.ID, "2024-01-10", 10, 100)

		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		if _, err := svc.RecordSnapshot(context.Background(), date); err != nil {
			t.Fatalf("Failed to record first snapshot: %v", err)
		}

		// Change the price and record again for the same day
		price := 120.0
		if _, err := investSvc.UpdateInvestment(context.Background(), investment.ID,
			request.UpdateInvestmentRequest{CurrentPrice: &price}); err != nil {
			t.Fatalf("Failed to update price: %v", err)
		}
		if _, err := svc.RecordSnapshot(context.Background(), date); err != nil {
			t.Fatalf("Failed to record second snapshot: %v", err)
		}

		history, err := svc.GetHistory(date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}

		if len(history) != 1 {
			t.Fatalf("Expected 1 snapshot after replacement, got %d", len(history))
		}
		if !approxEqual(history[0].CurrentValue, 1200) {
			t.Errorf("Expected replaced snapshot value 1200, got %g", history[0].CurrentValue)
		}
	})

	t.Run("history is filtered by the inclusive date range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		dates := []time.Time{
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		}
		for _, d := range dates {
			if _, err := svc.RecordSnapshot(context.Background(), d); err != nil {
				t.Fatalf("Failed to record snapshot for %v: %v", d, err)
			}
		}

		history, err := svc.GetHistory(dates[0], dates[1])
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}

		if len(history) != 2 {
			t.Fatalf("Expected 2 snapshots in range, got %d", len(history))
		}
		// Oldest first
		if !history[0].Date.Equal(dates[0]) || !history[1].Date.Equal(dates[1]) {
			t.Errorf("Expected snapshots ordered oldest first, got %v then %v",
				history[0].Date, history[1].Date)
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.GetHistory(start, end)

		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})
}
