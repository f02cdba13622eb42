package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/invtrack/investment-tracker/internal/scheduler"
	"github.com/invtrack/investment-tracker/internal/testutil"
)

func setupSystemHandler(t *testing.T) (*SystemHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSystemService(t, db)
	ps := testutil.NewTestPortfolioService(t, db)

	sched := scheduler.New(zerolog.Nop())
	job := scheduler.NewSnapshotJob(ps, zerolog.Nop())

	return NewSystemHandler(ss, sched, job), db
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}

		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}

		if response.Error != "" {
			t.Errorf("Expected no error, got '%s'", response.Error)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupSystemHandler(t)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("returns version information successfully", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response VersionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AppVersion == "" {
			t.Error("Expected app_version to be populated")
		}
	})
}

func TestSystemHandler_TriggerSnapshot(t *testing.T) {
	t.Run("records a snapshot immediately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestSystemService(t, db)
		ps := testutil.NewTestPortfolioService(t, db)
		handler := NewSystemHandler(ss, scheduler.New(zerolog.Nop()), scheduler.NewSnapshotJob(ps, zerolog.Nop()))

		investment := testutil.NewInvestment().WithCurrentPrice(150).Build(t, db)
		testutil.CreateBuy(t, db, investment.ID, "2024-01-10", 10, 100)

		req := httptest.NewRequest(http.MethodPost, "/api/system/snapshot", nil)
		w := httptest.NewRecorder()

		handler.TriggerSnapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		// Today's snapshot now exists with the overview totals
		now := time.Now().UTC()
		history, err := ps.GetHistory(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(history))
		}
		if history[0].CurrentValue != 1500 {
			t.Errorf("Expected snapshot value 1500, got %g", history[0].CurrentValue)
		}
	})

	t.Run("returns 500 when the snapshot cannot be recorded", func(t *testing.T) {
		handler, db := setupSystemHandler(t)
		db.Close() // Force database error

		req := httptest.NewRequest(http.MethodPost, "/api/system/snapshot", nil)
		w := httptest.NewRecorder()

		handler.TriggerSnapshot(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
