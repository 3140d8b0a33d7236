package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/repository"
)

// Service defines the interface for ledger operations
type Service interface {
	GetBalance(ctx context.Context, accountID string) (int64, error)
	GetHistory(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
	Credit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error)
	Debit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error)

	// DebitRecorded is Debit plus the id of the ledger row it wrote, for
	// callers that attach a settlement reference afterwards.
	DebitRecorded(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, int64, error)

	AttachSettlementRef(ctx context.Context, transactionID int64, ref string) error
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

// GetBalance returns an account's current balance
func (s *service) GetBalance(ctx context.Context, accountID string) (int64, error) {
	if accountID == "" {
		return 0, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetBalance(ctx, accountID)
}

// GetHistory returns an account's most recent transactions
func (s *service) GetHistory(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}

	// Existence check so an empty history and an unknown account stay distinct
	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, accountID, limit)
}

// Credit adds funds to an account and records the ledger row atomically
func (s *service) Credit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreditCalled, "accountID", accountID, "amount", amount, "kind", kind)

	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	newBalance, err := tx.CreditBalance(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}

	record := domain.Transaction{
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: description,
	}
	if _, err := tx.InsertTransaction(ctx, record); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToRecordTx, err)
	}

	if err := tx.TouchLastActive(ctx, accountID); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return newBalance, nil
}

// Debit removes funds from an account and records the ledger row atomically.
// Returns domain.ErrInsufficientFunds without changing anything when the
// balance cannot cover the amount.
func (s *service) Debit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error) {
	newBalance, _, err := s.DebitRecorded(ctx, accountID, amount, kind, description)
	return newBalance, err
}

// DebitRecorded removes funds and returns both the new balance and the
// ledger row id
func (s *service) DebitRecorded(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, int64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDebitCalled, "accountID", accountID, "amount", amount, "kind", kind)

	if amount <= 0 {
		return 0, 0, domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	newBalance, err := tx.DebitBalance(ctx, accountID, amount)
	if err != nil {
		return 0, 0, err
	}

	record := domain.Transaction{
		AccountID:   accountID,
		Kind:        kind,
		Amount:      -amount,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: description,
	}
	txID, err := tx.InsertTransaction(ctx, record)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrContextFailedToRecordTx, err)
	}

	if err := tx.TouchLastActive(ctx, accountID); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return newBalance, txID, nil
}

// AttachSettlementRef records the external settlement id on a committed row
func (s *service) AttachSettlementRef(ctx context.Context, transactionID int64, ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: settlement ref is required", domain.ErrInvalidInput)
	}
	return s.repo.AttachSettlementRef(ctx, transactionID, ref)
}
