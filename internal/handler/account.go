package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/CaseVault_Go/internal/account"
	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/ledger"
	"github.com/osse101/CaseVault_Go/internal/logger"
)

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	AccountID    string `json:"account_id" validate:"required,max=128"`
	ReferralCode string `json:"referral_code,omitempty" validate:"omitempty,max=64"`
}

// RegisterResponse returns the registered account
type RegisterResponse struct {
	AccountID    string `json:"account_id"`
	Balance      int64  `json:"balance"`
	ReferralCode string `json:"referral_code"`
	ReferredBy   string `json:"referred_by,omitempty"`
}

// HandleRegister creates or returns the account for an id
func HandleRegister(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register account"); err != nil {
			return
		}

		acc, err := svc.Register(r.Context(), req.AccountID, req.ReferralCode)
		if err != nil {
			respondServiceError(w, r, "Register account", err)
			return
		}

		respondJSON(w, http.StatusOK, RegisterResponse{
			AccountID:    acc.ID,
			Balance:      acc.Balance,
			ReferralCode: acc.ReferralCode,
			ReferredBy:   acc.ReferredBy,
		})
	}
}

// BalanceResponse returns an account's current balance
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
}

// HandleGetBalance returns the account balance
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			AccountID: accountID,
			Balance:   balance,
			Currency:  domain.CurrencyTON,
		})
	}
}

// HandleGetTransactions returns an account's recent ledger rows
func HandleGetTransactions(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		limit := 0
		if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}

		transactions, err := svc.GetHistory(r.Context(), accountID, limit)
		if err != nil {
			respondServiceError(w, r, "Get transactions", err)
			return
		}

		logger.FromContext(r.Context()).Debug("Transactions retrieved", "accountID", accountID, "count", len(transactions))
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"account_id":   accountID,
			"transactions": transactions,
		})
	}
}

// DepositRequest is the payload for crediting a settlement payment
type DepositRequest struct {
	AccountID     string `json:"account_id" validate:"required,max=128"`
	SettlementRef string `json:"settlement_ref" validate:"required,max=256"`
}

// DepositResponse returns the post-deposit balance
type DepositResponse struct {
	AccountID  string `json:"account_id"`
	NewBalance int64  `json:"new_balance"`
}

// HandleDeposit credits a confirmed settlement payment
func HandleDeposit(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DepositRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
			return
		}

		newBalance, err := svc.Deposit(r.Context(), req.AccountID, req.SettlementRef)
		if err != nil {
			respondServiceError(w, r, "Deposit", err)
			return
		}

		respondJSON(w, http.StatusOK, DepositResponse{
			AccountID:  req.AccountID,
			NewBalance: newBalance,
		})
	}
}
