package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invtrack/investment-tracker/internal/api"
	"github.com/invtrack/investment-tracker/internal/config"
	"github.com/invtrack/investment-tracker/internal/database"
	"github.com/invtrack/investment-tracker/internal/logger"
	"github.com/invtrack/investment-tracker/internal/repository"
	"github.com/invtrack/investment-tracker/internal/scheduler"
	"github.com/invtrack/investment-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})
	logger.SetGlobalLogger(log)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Create repositories
	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services; mutations share one per-investment lock table
	locks := service.NewInvestmentLocks()
	systemService := service.NewSystemService(db)
	investmentService := service.NewInvestmentService(investmentRepo, locks)
	transactionService := service.NewTransactionService(transactionRepo, investmentRepo, locks)
	portfolioService := service.NewPortfolioService(investmentRepo, snapshotRepo)

	// Start the snapshot scheduler. The job is always created so it can be
	// triggered manually; the cron registration is what the schedule gates.
	sched := scheduler.New(log)
	snapshotJob := scheduler.NewSnapshotJob(portfolioService, log)
	if cfg.Snapshot.Schedule != "" {
		if err := sched.AddJob(cfg.Snapshot.Schedule, snapshotJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register snapshot job")
		}
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(systemService, investmentService, transactionService, portfolioService, sched, snapshotJob, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
