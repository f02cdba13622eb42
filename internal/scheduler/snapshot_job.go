package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/invtrack/investment-tracker/internal/service"
)

// SnapshotJob records the portfolio overview into the snapshot table, giving
// the history endpoint one data point per day.
type SnapshotJob struct {
	portfolioService *service.PortfolioService
	log              zerolog.Logger
}

// NewSnapshotJob creates a new SnapshotJob.
func NewSnapshotJob(portfolioService *service.PortfolioService, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		portfolioService: portfolioService,
		log:              log.With().Str("job", "overview-snapshot").Logger(),
	}
}

// Name returns the job name used in scheduler logs.
func (j *SnapshotJob) Name() string {
	return "overview-snapshot"
}

// Run computes the current portfolio overview and upserts today's snapshot.
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snapshot, err := j.portfolioService.RecordSnapshot(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	j.log.Info().
		Str("date", snapshot.Date.Format("2006-01-02")).
		Float64("currentValue", snapshot.CurrentValue).
		Float64("unrealizedPL", snapshot.UnrealizedPL).
		Msg("Recorded overview snapshot")

	return nil
}
