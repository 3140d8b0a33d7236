package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Service call failed", "operation", opName, "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgAccountExistsError   = "Account already exists"
	ErrMsgNotEnoughMoneyError  = "Not enough balance"
	ErrMsgInvalidAmountError   = "Amount must be positive"

	ErrMsgCaseNotFoundError     = "Case not found"
	ErrMsgEmptyRewardTableError = "Case has no rewards configured"

	ErrMsgInvalidInventoryRefError = "One or more items are not in your inventory anymore"
	ErrMsgTargetNotFoundError      = "Upgrade target not found"
	ErrMsgNoInputItemsError        = "Select at least one item to upgrade"
	ErrMsgTargetTooCheapError      = "Target must be worth more than your input items"

	ErrMsgSettlementPendingError  = "Payment is not confirmed yet"
	ErrMsgSettlementNotFoundError = "Payment not found"
	ErrMsgDuplicateDepositError   = "This payment has already been credited"

	ErrMsgReconciliationError = "Your payment went through but the reward could not be delivered. Support has been notified."
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal error details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		return http.StatusConflict, ErrMsgAccountExistsError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, ErrMsgCaseNotFoundError
	case errors.Is(err, domain.ErrEmptyRewardTable):
		return http.StatusInternalServerError, ErrMsgEmptyRewardTableError
	case errors.Is(err, domain.ErrInvalidInventoryRef):
		return http.StatusConflict, ErrMsgInvalidInventoryRefError
	case errors.Is(err, domain.ErrTargetNotFound):
		return http.StatusNotFound, ErrMsgTargetNotFoundError
	case errors.Is(err, domain.ErrNoInputItems):
		return http.StatusBadRequest, ErrMsgNoInputItemsError
	case errors.Is(err, domain.ErrTargetTooCheap):
		return http.StatusBadRequest, ErrMsgTargetTooCheapError
	case errors.Is(err, domain.ErrSettlementNotConfirmed):
		return http.StatusConflict, ErrMsgSettlementPendingError
	case errors.Is(err, domain.ErrSettlementNotFound):
		return http.StatusNotFound, ErrMsgSettlementNotFoundError
	case errors.Is(err, domain.ErrDuplicateSettlementRef):
		return http.StatusConflict, ErrMsgDuplicateDepositError
	case errors.Is(err, domain.ErrReconciliationRequired):
		return http.StatusInternalServerError, ErrMsgReconciliationError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrTransientStore):
		return http.StatusServiceUnavailable, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
