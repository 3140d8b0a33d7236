package repository

import (
	"context"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Ledger defines the interface for balance and transaction persistence.
// Every balance mutation goes through a LedgerTx so the conditional balance
// update and the transaction row commit or roll back together.
type Ledger interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
	ListTransactions(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)

	// AttachSettlementRef is the single permitted post-insert mutation of a
	// transaction row.
	AttachSettlementRef(ctx context.Context, transactionID int64, ref string) error

	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx defines transactional ledger operations
type LedgerTx interface {
	Tx

	// DebitBalance decrements the balance only if sufficient funds remain
	// ("set balance = balance - $2 where balance >= $2") and returns the new
	// balance. Returns domain.ErrInsufficientFunds when the condition fails.
	DebitBalance(ctx context.Context, accountID string, amount int64) (int64, error)

	// CreditBalance increments the balance and returns the new balance.
	CreditBalance(ctx context.Context, accountID string, amount int64) (int64, error)

	InsertTransaction(ctx context.Context, tx domain.Transaction) (int64, error)
	TouchLastActive(ctx context.Context, accountID string) error
}
