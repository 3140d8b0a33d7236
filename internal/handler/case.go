package handler

import (
	"net/http"

	"github.com/osse101/CaseVault_Go/internal/caseopen"
	"github.com/osse101/CaseVault_Go/internal/catalog"
	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
)

// CaseSummary is the public view of one purchasable case
type CaseSummary struct {
	CaseID  string             `json:"case_id"`
	Price   int64              `json:"price"`
	Entries []CaseEntrySummary `json:"entries"`
}

// CaseEntrySummary is one reward inside a case, with its drop chance
type CaseEntrySummary struct {
	Name   string  `json:"name"`
	Rarity string  `json:"rarity"`
	Value  int64   `json:"value"`
	Chance float64 `json:"chance"`
}

// HandleListCases returns the full case catalog with normalized drop chances
func HandleListCases(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables := cat.Cases()
		cases := make([]CaseSummary, 0, len(tables))
		for _, table := range tables {
			summary := CaseSummary{
				CaseID:  table.CaseID,
				Price:   table.Price,
				Entries: make([]CaseEntrySummary, 0, len(table.Entries)),
			}
			totalWeight := table.TotalWeight()
			for _, entry := range table.Entries {
				summary.Entries = append(summary.Entries, CaseEntrySummary{
					Name:   entry.Item.Name,
					Rarity: string(entry.Item.Rarity),
					Value:  entry.Item.Value,
					Chance: entry.Weight / totalWeight,
				})
			}
			cases = append(cases, summary)
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{"cases": cases})
	}
}

// OpenCaseRequest is the payload for opening a case
type OpenCaseRequest struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
	CaseID    string `json:"case_id" validate:"required,max=64"`
}

// OpenCaseResponse returns the drawn item and the post-debit balance
type OpenCaseResponse struct {
	CaseID     string      `json:"case_id"`
	Item       domain.Item `json:"item"`
	NewBalance int64       `json:"new_balance"`
}

// HandleOpenCase debits the case price and grants a drawn reward
func HandleOpenCase(svc caseopen.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenCaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
			return
		}

		opening, err := svc.OpenCase(r.Context(), req.AccountID, req.CaseID)
		if err != nil {
			respondServiceError(w, r, "Open case", err)
			return
		}

		logger.FromContext(r.Context()).Info("Case opened",
			"accountID", req.AccountID,
			"caseID", req.CaseID,
			"item", opening.Item.Name,
		)
		respondJSON(w, http.StatusOK, OpenCaseResponse{
			CaseID:     opening.CaseID,
			Item:       opening.Item,
			NewBalance: opening.NewBalance,
		})
	}
}

// HandleRecentWins returns the latest case openings, newest first
func HandleRecentWins(svc caseopen.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"wins": svc.RecentWins(r.Context()),
		})
	}
}
