package handlers

import (
	"net/http"

	"github.com/invtrack/investment-tracker/internal/api/response"
	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/scheduler"
	"github.com/invtrack/investment-tracker/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
	scheduler     *scheduler.Scheduler
	snapshotJob   scheduler.Job
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, sched *scheduler.Scheduler, snapshotJob scheduler.Job) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		scheduler:     sched,
		snapshotJob:   snapshotJob,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// TriggerSnapshot runs the overview snapshot job immediately, outside its
// cron schedule. Useful after bulk edits when the daily data point should
// reflect the new ledger state without waiting for midnight.
//
// Endpoint: POST /api/system/snapshot
// Response: 200 OK with status message
// Error: 500 Internal Server Error if the snapshot cannot be recorded
func (h *SystemHandler) TriggerSnapshot(w http.ResponseWriter, _ *http.Request) {
	if err := h.scheduler.RunNow(h.snapshotJob); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordSnapshot.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "snapshot recorded"})
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}
