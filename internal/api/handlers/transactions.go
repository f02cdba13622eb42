package handlers

import (
	"errors"
	"net/http"

	"github.com/invtrack/investment-tracker/internal/api/request"
	"github.com/invtrack/investment-tracker/internal/api/response"
	"github.com/invtrack/investment-tracker/internal/apperrors"
	"github.com/invtrack/investment-tracker/internal/service"
	"github.com/invtrack/investment-tracker/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests to retrieve transactions, ordered by date
// ascending. An optional investment_id query parameter filters the result to
// one investment; it must be a valid UUID when present.
//
// Endpoint: GET /api/transactions?investment_id={uuid}
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if investment_id is not a valid UUID
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	investmentID := r.URL.Query().Get("investment_id")

	if investmentID != "" {
		if err := validation.ValidateUUID(investmentID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid investment_id", err.Error())
			return
		}
	}

	transactions, err := h.transactionService.GetTransactions(investmentID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to create a new buy or sell
// transaction. A sell is rejected when it exceeds the quantity held at the
// transaction's date.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (investment_id, type, quantity, price, date)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the investment does not exist
// Error: 409 Conflict if a sell exceeds the held quantity
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestmentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientQuantity):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInsufficientQuantity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}
