package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/repository"
)

// CaseOpenRepository bundles the ledger and inventory access the case-opening
// engine needs. The debit transaction and the reward grant deliberately use
// separate connections: the grant happens only after the debit has committed.
type CaseOpenRepository struct {
	ledger    *LedgerRepository
	inventory *InventoryRepository
}

// NewCaseOpenRepository creates a new CaseOpenRepository
func NewCaseOpenRepository(db *pgxpool.Pool) *CaseOpenRepository {
	return &CaseOpenRepository{
		ledger:    NewLedgerRepository(db),
		inventory: NewInventoryRepository(db),
	}
}

// GetAccount retrieves an account by id
func (r *CaseOpenRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.ledger.GetAccount(ctx, accountID)
}

// BeginLedgerTx starts the transaction that holds the debit and its case_open row
func (r *CaseOpenRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.ledger.BeginTx(ctx)
}

// AddInventoryItem grants the drawn reward after the debit has committed
func (r *CaseOpenRepository) AddInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return r.inventory.AddItem(ctx, item)
}

// UpgradeRepository bundles the inventory access the upgrade engine needs.
// Stake removal shares one transaction with its upgrade_stake row; the win
// grant is a separate write performed after the stake has committed.
type UpgradeRepository struct {
	db        *pgxpool.Pool
	inventory *InventoryRepository
}

// NewUpgradeRepository creates a new UpgradeRepository
func NewUpgradeRepository(db *pgxpool.Pool) *UpgradeRepository {
	return &UpgradeRepository{db: db, inventory: NewInventoryRepository(db)}
}

// GetAccount retrieves an account by id
func (r *UpgradeRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, r.db, accountID)
}

// GetItems resolves inventory references without consuming them
func (r *UpgradeRepository) GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	return r.inventory.GetItems(ctx, accountID, ids)
}

// BeginInventoryTx starts the transaction that holds the stake removal and its
// upgrade_stake row
func (r *UpgradeRepository) BeginInventoryTx(ctx context.Context) (repository.InventoryTx, error) {
	return r.inventory.BeginTx(ctx)
}

// GrantItem inserts the won item and its upgrade_win record atomically
func (r *UpgradeRepository) GrantItem(ctx context.Context, item domain.InventoryItem, record domain.Transaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storeErr(ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := addInventoryItem(ctx, tx, item); err != nil {
		return err
	}
	if _, err := insertTransaction(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
