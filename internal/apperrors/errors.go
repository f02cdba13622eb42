package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates that a sell transaction cannot be completed
	// because the investment does not hold enough quantity at the transaction's date.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnknownTransactionType indicates a transaction type other than buy or sell.
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Investment operation errors
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")

	// Portfolio operation errors
	ErrFailedToComputeOverview = errors.New("failed to compute portfolio overview")
	ErrFailedToRetrieveHistory = errors.New("failed to retrieve portfolio history")
	ErrFailedToRecordSnapshot  = errors.New("failed to record portfolio snapshot")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a transaction references an investment that doesn't exist, or a
	// cascade deletion left orphaned transactions behind).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
