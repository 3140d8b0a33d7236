package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/upgrade"
)

// UpgradeTargetsRequest asks for the possible upgrades of a set of items
type UpgradeTargetsRequest struct {
	AccountID    string   `json:"account_id" validate:"required,max=128"`
	InputItemIDs []string `json:"input_item_ids" validate:"required,min=1,dive,uuid"`
}

// HandleListUpgradeTargets returns the catalog items the inputs could be
// upgraded into, with the success chance for each
func HandleListUpgradeTargets(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpgradeTargetsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "List upgrade targets"); err != nil {
			return
		}

		ids, err := parseItemIDs(req.InputItemIDs)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		targets, err := svc.ListTargets(r.Context(), req.AccountID, ids)
		if err != nil {
			respondServiceError(w, r, "List upgrade targets", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{"targets": targets})
	}
}

// ExecuteUpgradeRequest is the payload for the upgrade gamble
type ExecuteUpgradeRequest struct {
	AccountID    string   `json:"account_id" validate:"required,max=128"`
	InputItemIDs []string `json:"input_item_ids" validate:"required,min=1,dive,uuid"`
	Target       string   `json:"target" validate:"required,max=128"`
}

// ExecuteUpgradeResponse reports the outcome of an upgrade gamble
type ExecuteUpgradeResponse struct {
	Message    string       `json:"message"`
	Success    bool         `json:"success"`
	Chance     float64      `json:"chance"`
	InputValue int64        `json:"input_value"`
	Item       *domain.Item `json:"item,omitempty"`
}

// HandleExecuteUpgrade consumes the input items and gambles them for the target
func HandleExecuteUpgrade(svc upgrade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExecuteUpgradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Execute upgrade"); err != nil {
			return
		}

		ids, err := parseItemIDs(req.InputItemIDs)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		attempt, err := svc.ExecuteUpgrade(r.Context(), req.AccountID, ids, req.Target)
		if err != nil {
			respondServiceError(w, r, "Execute upgrade", err)
			return
		}

		logger.FromContext(r.Context()).Info("Upgrade executed",
			"accountID", req.AccountID,
			"target", req.Target,
			"success", attempt.Success,
		)

		message := MsgUpgradeLost
		if attempt.Success {
			message = MsgUpgradeWon
		}
		respondJSON(w, http.StatusOK, ExecuteUpgradeResponse{
			Message:    message,
			Success:    attempt.Success,
			Chance:     attempt.ComputedChance,
			InputValue: attempt.InputValue,
			Item:       attempt.ResultItem,
		})
	}
}

func parseItemIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgInvalidItemID, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
