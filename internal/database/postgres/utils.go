package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// querier abstracts pgxpool.Pool and pgx.Tx so row helpers work in and out
// of transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// isTransient reports whether err is a storage failure that aborted the
// statement but is safe to retry once the transaction is restarted:
// serialization failures, deadlocks, and connection-level errors.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return true
		}
		return strings.HasPrefix(pgErr.Code, PgErrorClassConnection)
	}
	return pgconn.SafeToRetry(err)
}

// storeErr wraps a storage failure, tagging retry-safe conditions so callers
// can re-run the enclosing transaction a bounded number of times.
func storeErr(msg string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %v", msg, domain.ErrTransientStore, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// ---- Common Row Helpers ----

func getAccount(ctx context.Context, q querier, accountID string) (*domain.Account, error) {
	var acc domain.Account
	var referralCode, referredBy *string
	err := q.QueryRow(ctx, `
		SELECT account_id, balance, referral_code, referred_by, created_at, last_active_at
		FROM accounts
		WHERE account_id = $1
	`, accountID).Scan(&acc.ID, &acc.Balance, &referralCode, &referredBy, &acc.CreatedAt, &acc.LastActiveAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if referralCode != nil {
		acc.ReferralCode = *referralCode
	}
	if referredBy != nil {
		acc.ReferredBy = *referredBy
	}
	return &acc, nil
}

func insertTransaction(ctx context.Context, q querier, tx domain.Transaction) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO transactions (account_id, kind, amount, currency, status, description, settlement_ref)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING transaction_id
	`, tx.AccountID, string(tx.Kind), tx.Amount, tx.Currency, string(tx.Status), tx.Description, tx.SettlementRef).Scan(&id)
	if err != nil {
		// The only unique index on transactions is the partial index over
		// settlement_ref, so a violation here is a replayed deposit.
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrDuplicateSettlementRef, tx.SettlementRef)
		}
		return 0, storeErr("failed to insert transaction", err)
	}
	return id, nil
}

func addInventoryItem(ctx context.Context, q querier, item domain.InventoryItem) error {
	_, err := q.Exec(ctx, `
		INSERT INTO inventory_items (id, account_id, item_name, item_rarity, item_value, acquired_at, source_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, item.ID, item.AccountID, item.Item.Name, string(item.Item.Rarity), item.Item.Value, item.AcquiredAt, item.SourceLabel)
	if err != nil {
		return storeErr("failed to add inventory item", err)
	}
	return nil
}

func scanInventoryItems(rows pgx.Rows) ([]domain.InventoryItem, error) {
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		var rarity string
		if err := rows.Scan(&item.ID, &item.AccountID, &item.Item.Name, &rarity, &item.Item.Value, &item.AcquiredAt, &item.SourceLabel); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		item.Item.Rarity = domain.Rarity(rarity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory items: %w", err)
	}
	return items, nil
}
