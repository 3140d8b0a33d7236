package handler

import (
	"net/http"

	"github.com/osse101/CaseVault_Go/internal/inventory"
)

// HandleGetInventory returns everything an account owns plus the total value
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), accountID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		var totalValue int64
		for _, item := range items {
			totalValue += item.Item.Value
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"account_id":  accountID,
			"items":       items,
			"total_value": totalValue,
		})
	}
}
