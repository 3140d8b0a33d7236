package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, ErrMsgAccountNotFoundError},
		{"account exists", domain.ErrAccountAlreadyExists, http.StatusConflict, ErrMsgAccountExistsError},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusConflict, ErrMsgNotEnoughMoneyError},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest, ErrMsgInvalidAmountError},
		{"case not found", domain.ErrCaseNotFound, http.StatusNotFound, ErrMsgCaseNotFoundError},
		{"empty reward table", domain.ErrEmptyRewardTable, http.StatusInternalServerError, ErrMsgEmptyRewardTableError},
		{"invalid inventory ref", domain.ErrInvalidInventoryRef, http.StatusConflict, ErrMsgInvalidInventoryRefError},
		{"target not found", domain.ErrTargetNotFound, http.StatusNotFound, ErrMsgTargetNotFoundError},
		{"no input items", domain.ErrNoInputItems, http.StatusBadRequest, ErrMsgNoInputItemsError},
		{"target too cheap", domain.ErrTargetTooCheap, http.StatusBadRequest, ErrMsgTargetTooCheapError},
		{"settlement pending", domain.ErrSettlementNotConfirmed, http.StatusConflict, ErrMsgSettlementPendingError},
		{"settlement not found", domain.ErrSettlementNotFound, http.StatusNotFound, ErrMsgSettlementNotFoundError},
		{"duplicate settlement ref", domain.ErrDuplicateSettlementRef, http.StatusConflict, ErrMsgDuplicateDepositError},
		{"reconciliation required", domain.ErrReconciliationRequired, http.StatusInternalServerError, ErrMsgReconciliationError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{"transient store", domain.ErrTransientStore, http.StatusServiceUnavailable, ErrMsgGenericServerError},
		{"unmapped error", errors.New("something internal"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil error", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to open case: %w", domain.ErrInsufficientFunds)

	status, msg := mapServiceErrorToUserMessage(wrapped)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, ErrMsgNotEnoughMoneyError, msg)
	assert.NotContains(t, msg, "failed to open case", "internal detail must not leak")
}
