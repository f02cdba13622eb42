package handlers

import (
	"net/http"
	"time"

	"github.com/invtrack/investment-tracker/internal/api/response"
	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/repository"
	"github.com/invtrack/investment-tracker/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Overview handles GET requests for the portfolio-wide overview: totals
// across all investments, a breakdown by investment type, and the
// per-investment rows. Recomputed from the ledger on every call.
//
// Endpoint: GET /api/portfolio/overview
// Response: 200 OK with Overview
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Overview(w http.ResponseWriter, _ *http.Request) {
	overview, err := h.portfolioService.GetOverview()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeOverview.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// History handles GET requests for the recorded overview snapshot time
// series. Optional start_date and end_date query parameters (YYYY-MM-DD)
// bound the range; they default to the last year.
//
// Endpoint: GET /api/portfolio/history?start_date=2024-01-01&end_date=2024-12-31
// Response: 200 OK with array of OverviewSnapshot
// Error: 400 Bad Request if a date parameter is malformed or the range is inverted
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) History(w http.ResponseWriter, r *http.Request) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(-1, 0, 0)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := repository.ParseTime(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid start_date", err.Error())
			return
		}
		startDate = parsed
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := repository.ParseTime(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid end_date", err.Error())
			return
		}
		endDate = parsed
	}

	if startDate.After(endDate) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), "start_date is after end_date")
		return
	}

	snapshots, err := h.portfolioService.GetHistory(startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}
