package handler

import (
	"net/http"

	"github.com/osse101/CaseVault_Go/internal/admin"
	"github.com/osse101/CaseVault_Go/internal/logger"
)

// WithdrawRequest is the payload for an operator payout
type WithdrawRequest struct {
	AccountID   string `json:"account_id" validate:"required,max=128"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Destination string `json:"destination" validate:"required,max=256"`
}

// HandleWithdraw debits an account and submits the payout to the settlement
// network. Operator only.
func HandleWithdraw(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WithdrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Withdraw"); err != nil {
			return
		}

		withdrawal, err := svc.Withdraw(r.Context(), req.AccountID, req.Amount, req.Destination)
		if err != nil {
			respondServiceError(w, r, "Withdraw", err)
			return
		}

		logger.FromContext(r.Context()).Info("Withdrawal settled",
			"accountID", req.AccountID,
			"amount", req.Amount,
			"settlementRef", withdrawal.SettlementRef,
		)
		respondJSON(w, http.StatusOK, withdrawal)
	}
}

// ContractRequest is the payload for charging a contract execution
type ContractRequest struct {
	AccountID   string `json:"account_id" validate:"required,max=128"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description,omitempty" validate:"omitempty,max=512"`
}

// HandleExecuteContract charges an account for an on-chain contract call.
// Operator only.
func HandleExecuteContract(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContractRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Execute contract"); err != nil {
			return
		}

		result, err := svc.ExecuteContract(r.Context(), req.AccountID, req.Amount, req.Description)
		if err != nil {
			respondServiceError(w, r, "Execute contract", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
