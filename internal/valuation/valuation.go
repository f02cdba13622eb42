// Package valuation derives per-investment figures from ordered transaction
// history. It is pure computation: no storage access, no side effects.
//
// Cost basis uses the weighted-average method: all held units share one
// average unit cost, recomputed on every buy and sell. Sells remove cost at
// the current average unit cost rather than tracking individual lots. This is
// a deliberate design commitment of the data model (there are no lot
// identifiers), not an incidental shortcut.
package valuation

import (
	"fmt"
	"sort"
	"time"

	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/model"
)

// Metrics represents the calculated figures for a single investment at a
// point in time. All values are derived from the transaction history and the
// supplied current price; nothing here is ever stored.
type Metrics struct {
	Quantity         float64 // Units currently held
	CostBasis        float64 // Cumulative cost of held units (weighted-average method)
	AvgPurchasePrice float64 // CostBasis / Quantity, 0 when nothing is held
	CurrentValue     float64 // Quantity * current price
	UnrealizedPL     float64 // CurrentValue - CostBasis
	PLPercent        float64 // UnrealizedPL / CostBasis * 100, 0 when CostBasis is 0
}

// Compute calculates the metrics for one investment from its full transaction
// history and the current market price.
//
// Transactions are processed in chronological order regardless of the order
// they arrive in; ties on date fall back to creation time so that replays are
// deterministic. Processing logic:
//   - "buy": quantity increases by the bought amount, cost basis by quantity*price
//   - "sell": quantity decreases, cost basis is scaled down proportionally so the
//     average unit cost of the remaining position is unchanged
//
// A transaction type other than buy or sell indicates corrupt ledger data and
// aborts the computation rather than being silently skipped.
func Compute(transactions []model.Transaction, currentPrice float64) (Metrics, error) {
	ordered := sortedByDate(transactions)

	var quantity, costBasis float64

	for _, transaction := range ordered {
		switch transaction.Type {
		case model.TransactionTypeBuy:
			quantity += transaction.Quantity
			costBasis += transaction.Quantity * transaction.Price
		case model.TransactionTypeSell:
			quantity -= transaction.Quantity
			if quantity > 0.0 {
				costBasis = (costBasis / (quantity + transaction.Quantity)) * quantity
			} else {
				costBasis = 0.0
			}
		default:
			return Metrics{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownTransactionType, transaction.Type)
		}
	}

	avgPurchasePrice := 0.0
	if quantity > 0.0 {
		avgPurchasePrice = costBasis / quantity
	}

	currentValue := quantity * currentPrice

	metrics := Metrics{
		Quantity:         quantity,
		CostBasis:        costBasis,
		AvgPurchasePrice: avgPurchasePrice,
		CurrentValue:     currentValue,
		UnrealizedPL:     currentValue - costBasis,
	}

	if costBasis > 0.0 {
		metrics.PLPercent = metrics.UnrealizedPL / costBasis * 100.0
	}

	return metrics, nil
}

// QuantityAt returns the quantity held at the given date, computed over all
// transactions dated on or before it in chronological order. This is the
// running position a new sell transaction is checked against: a sell may not
// exceed the quantity available at its own timestamp, with the transaction
// evaluated in date order rather than insertion order.
func QuantityAt(transactions []model.Transaction, date time.Time) (float64, error) {
	var quantity float64

	for _, transaction := range sortedByDate(transactions) {
		if transaction.Date.After(date) {
			break
		}

		switch transaction.Type {
		case model.TransactionTypeBuy:
			quantity += transaction.Quantity
		case model.TransactionTypeSell:
			quantity -= transaction.Quantity
		default:
			return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownTransactionType, transaction.Type)
		}
	}

	return quantity, nil
}

// sortedByDate returns a copy of transactions sorted by date ascending, with
// creation time as the tie-breaker. The input slice is left untouched.
func sortedByDate(transactions []model.Transaction) []model.Transaction {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	return ordered
}
