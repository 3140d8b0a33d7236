package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// CaseOpen defines the data access required by the case-opening engine.
// The debit and its case_open transaction row share one LedgerTx; the reward
// grant is a separate, retryable write that happens only after that commit.
type CaseOpen interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	BeginLedgerTx(ctx context.Context) (LedgerTx, error)
	AddInventoryItem(ctx context.Context, item domain.InventoryItem) error
}

// Upgrade defines the data access required by the upgrade engine.
// Stake removal and its upgrade_stake row share one InventoryTx that must be
// committed before any outcome is drawn; the win grant is a separate,
// retryable write.
type Upgrade interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error)
	BeginInventoryTx(ctx context.Context) (InventoryTx, error)
	GrantItem(ctx context.Context, item domain.InventoryItem, record domain.Transaction) error
}
