package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is one owned unit of an item. No implicit stacking: opening
// the same case twice yields two rows.
type InventoryItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AccountID   string    `json:"account_id" db:"account_id"`
	Item        Item      `json:"item"`
	AcquiredAt  time.Time `json:"acquired_at" db:"acquired_at"`
	SourceLabel string    `json:"source_label" db:"source_label"`
}
