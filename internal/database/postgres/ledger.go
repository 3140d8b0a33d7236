package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/repository"
)

// LedgerRepository implements the ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx pgx.Tx
}

// BeginTx starts a new ledger transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storeErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &LedgerTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return storeErr("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetAccount retrieves an account by id
func (r *LedgerRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, r.db, accountID)
}

// GetBalance retrieves the current balance for an account
func (r *LedgerRepository) GetBalance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// ListTransactions returns the most recent ledger rows for an account
func (r *LedgerRepository) ListTransactions(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT transaction_id, account_id, kind, amount, currency, status, description,
		       COALESCE(settlement_ref, ''), created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var kind, status string
		if err := rows.Scan(&t.ID, &t.AccountID, &kind, &t.Amount, &t.Currency, &status, &t.Description, &t.SettlementRef, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Kind = domain.TransactionKind(kind)
		t.Status = domain.TransactionStatus(status)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txs, nil
}

// AttachSettlementRef records the external settlement identifier for a
// transaction after the fact. All other columns stay immutable.
func (r *LedgerRepository) AttachSettlementRef(ctx context.Context, transactionID int64, ref string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET settlement_ref = $2, status = $3
		WHERE transaction_id = $1
	`, transactionID, ref, string(domain.TransactionCompleted))
	if err != nil {
		return fmt.Errorf("failed to attach settlement ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", domain.ErrInvalidInput, transactionID)
	}
	return nil
}

// DebitBalance decrements balance only when funds are sufficient. The WHERE
// clause makes the check-then-debit a single atomic statement, so two
// concurrent spends can never both pass the check.
func (t *LedgerTx) DebitBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	var balance int64
	err := t.tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance - $2
		WHERE account_id = $1
		  AND balance >= $2
		RETURNING balance
	`, accountID, amount).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, storeErr("failed to debit balance", err)
	}

	// No row updated: distinguish a missing account from insufficient funds
	if _, lookupErr := getAccount(ctx, t.tx, accountID); lookupErr != nil {
		return 0, lookupErr
	}
	return 0, domain.ErrInsufficientFunds
}

// CreditBalance increments the balance and returns the new value
func (t *LedgerTx) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	var balance int64
	err := t.tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_id = $1
		RETURNING balance
	`, accountID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, storeErr("failed to credit balance", err)
	}
	return balance, nil
}

// InsertTransaction appends a ledger row within the transaction
func (t *LedgerTx) InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error) {
	return insertTransaction(ctx, t.tx, tx)
}

// TouchLastActive bumps the account's last activity timestamp
func (t *LedgerTx) TouchLastActive(ctx context.Context, accountID string) error {
	_, err := t.tx.Exec(ctx, `UPDATE accounts SET last_active_at = now() WHERE account_id = $1`, accountID)
	if err != nil {
		return storeErr("failed to touch last active", err)
	}
	return nil
}
