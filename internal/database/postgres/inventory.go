package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	tx pgx.Tx
}

// BeginTx starts a new inventory transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storeErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &InventoryTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *InventoryTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return storeErr("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *InventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ListItems returns every item an account currently owns
func (r *InventoryRepository) ListItems(ctx context.Context, accountID string) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, item_name, item_rarity, item_value, acquired_at, source_label
		FROM inventory_items
		WHERE account_id = $1
		ORDER BY acquired_at DESC, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return scanInventoryItems(rows)
}

// GetItems returns the referenced items that exist and belong to the account.
// Callers compare the result length against len(ids) to detect stale refs.
func (r *InventoryRepository) GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, item_name, item_rarity, item_value, acquired_at, source_label
		FROM inventory_items
		WHERE account_id = $1 AND id = ANY($2)
	`, accountID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}
	return scanInventoryItems(rows)
}

// TotalValue sums the catalog value of everything an account owns
func (r *InventoryRepository) TotalValue(ctx context.Context, accountID string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(item_value), 0)
		FROM inventory_items
		WHERE account_id = $1
	`, accountID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum inventory value: %w", err)
	}
	return total, nil
}

// AddItem inserts an inventory row outside any transaction
func (r *InventoryRepository) AddItem(ctx context.Context, item domain.InventoryItem) error {
	return addInventoryItem(ctx, r.db, item)
}

// TakeItems removes the referenced rows and returns them. The DELETE is
// scoped to the account, so a reference to another account's item simply
// matches nothing and the whole batch fails with ErrInvalidInventoryRef.
func (t *InventoryTx) TakeItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoInputItems
	}

	rows, err := t.tx.Query(ctx, `
		DELETE FROM inventory_items
		WHERE account_id = $1 AND id = ANY($2)
		RETURNING id, account_id, item_name, item_rarity, item_value, acquired_at, source_label
	`, accountID, ids)
	if err != nil {
		return nil, storeErr("failed to take inventory items", err)
	}
	items, err := scanInventoryItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, domain.ErrInvalidInventoryRef
	}
	return items, nil
}

// AddItem inserts an inventory row within the transaction
func (t *InventoryTx) AddItem(ctx context.Context, item domain.InventoryItem) error {
	return addInventoryItem(ctx, t.tx, item)
}

// InsertTransaction appends a ledger row within the transaction
func (t *InventoryTx) InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error) {
	return insertTransaction(ctx, t.tx, tx)
}
