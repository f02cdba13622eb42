package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/model"
)

// SnapshotRepository provides data access methods for the overview_snapshot
// table, which holds the daily portfolio overview time series written by the
// scheduled snapshot job.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot inserts a snapshot for its date, replacing an existing
// snapshot for the same date. Re-running the snapshot job for a day is
// therefore idempotent.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot *model.OverviewSnapshot) error {
	query := `
		INSERT INTO overview_snapshot (id, date, current_value, cost_basis, unrealized_pl, pl_percent, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			current_value = excluded.current_value,
			cost_basis = excluded.cost_basis,
			unrealized_pl = excluded.unrealized_pl,
			pl_percent = excluded.pl_percent,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID,
		snapshot.Date.UTC().Format("2006-01-02"),
		snapshot.CurrentValue,
		snapshot.CostBasis,
		snapshot.UnrealizedPL,
		snapshot.PLPercent,
		snapshot.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert overview snapshot: %w", err)
	}

	return nil
}

// GetSnapshots retrieves snapshots within the inclusive date range, sorted by
// date ascending.
func (r *SnapshotRepository) GetSnapshots(startDate, endDate time.Time) ([]model.OverviewSnapshot, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: startDate (%s) must be before or equal to endDate (%s)",
			apperrors.ErrInvalidDateRange,
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	query := `
		SELECT id, date, current_value, cost_basis, unrealized_pl, pl_percent, calculated_at
		FROM overview_snapshot
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.OverviewSnapshot{}

	for rows.Next() {
		var dateStr, calculatedAtStr string
		var s model.OverviewSnapshot

		err := rows.Scan(
			&s.ID,
			&dateStr,
			&s.CurrentValue,
			&s.CostBasis,
			&s.UnrealizedPL,
			&s.PLPercent,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overview_snapshot table results: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overview_snapshot table: %w", err)
	}

	return snapshots, nil
}
