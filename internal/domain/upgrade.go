package domain

import (
	"time"

	"github.com/google/uuid"
)

// UpgradeAttempt records one upgrade gamble. Kept for audit; the stake is
// consumed whether or not the attempt succeeds.
type UpgradeAttempt struct {
	AccountID      string      `json:"account_id"`
	InputItemIDs   []uuid.UUID `json:"input_item_ids"`
	InputValue     int64       `json:"input_value"`
	TargetItem     Item        `json:"target_item"`
	ComputedChance float64     `json:"computed_chance"`
	Success        bool        `json:"success"`
	ResultItem     *Item       `json:"result_item,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// CaseOpening is the result of a successful case open: the drawn item plus
// the post-debit balance.
type CaseOpening struct {
	AccountID  string    `json:"account_id"`
	CaseID     string    `json:"case_id"`
	Item       Item      `json:"item"`
	NewBalance int64     `json:"new_balance"`
	OpenedAt   time.Time `json:"opened_at"`
}
