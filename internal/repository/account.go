package repository

import (
	"context"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Account defines the interface for account bootstrap persistence
type Account interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error)
	InsertAccount(ctx context.Context, account *domain.Account) error

	BeginLedgerTx(ctx context.Context) (LedgerTx, error)
}
