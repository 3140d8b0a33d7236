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

// AccountRepository implements the account repository for PostgreSQL
type AccountRepository struct {
	db     *pgxpool.Pool
	ledger *LedgerRepository
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db, ledger: NewLedgerRepository(db)}
}

// GetAccount retrieves an account by id
func (r *AccountRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return getAccount(ctx, r.db, accountID)
}

// GetAccountByReferralCode retrieves the account that owns a referral code
func (r *AccountRepository) GetAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	var accountID string
	err := r.db.QueryRow(ctx, `SELECT account_id FROM accounts WHERE referral_code = $1`, code).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by referral code: %w", err)
	}
	return getAccount(ctx, r.db, accountID)
}

// InsertAccount creates a new account row. Returns ErrAccountAlreadyExists if
// the id or referral code is already taken.
func (r *AccountRepository) InsertAccount(ctx context.Context, account *domain.Account) error {
	var referredBy *string
	if account.ReferredBy != "" {
		referredBy = &account.ReferredBy
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (account_id, balance, referral_code, referred_by)
		VALUES ($1, $2, $3, $4)
	`, account.ID, account.Balance, account.ReferralCode, referredBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// BeginLedgerTx starts a ledger transaction for bonus credits
func (r *AccountRepository) BeginLedgerTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.ledger.BeginTx(ctx)
}
