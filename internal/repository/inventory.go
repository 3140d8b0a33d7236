package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Inventory defines the interface for owned-item persistence
type Inventory interface {
	ListItems(ctx context.Context, accountID string) ([]domain.InventoryItem, error)
	GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error)
	TotalValue(ctx context.Context, accountID string) (int64, error)
	AddItem(ctx context.Context, item domain.InventoryItem) error

	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines transactional inventory operations
type InventoryTx interface {
	Tx

	// TakeItems validates that every referenced row exists and belongs to the
	// account, removes them, and returns the removed rows. If any reference
	// is stale or foreign the whole batch fails with
	// domain.ErrInvalidInventoryRef and nothing is removed.
	TakeItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error)

	AddItem(ctx context.Context, item domain.InventoryItem) error
	InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error)
}
