package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/metrics"
	"github.com/osse101/CaseVault_Go/internal/repository"
	"github.com/osse101/CaseVault_Go/internal/settlement"
)

// Service defines the interface for account bootstrap and deposit operations
type Service interface {
	// Register creates the account on first contact and is idempotent: a
	// second call returns the existing account and never pays the referral
	// bonus twice.
	Register(ctx context.Context, accountID, referredByCode string) (*domain.Account, error)

	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// Deposit credits a settlement-network payment to the account. The
	// payment must be confirmed and addressed to the account; each
	// settlement reference can be credited at most once.
	Deposit(ctx context.Context, accountID, settlementRef string) (int64, error)
}

type service struct {
	repo          repository.Account
	settlement    settlement.Client
	referralBonus int64
}

// NewService creates a new account service
func NewService(repo repository.Account, settlementClient settlement.Client, referralBonus int64) Service {
	return &service{
		repo:          repo,
		settlement:    settlementClient,
		referralBonus: referralBonus,
	}
}

// Register creates a new account with a fresh referral code
func (s *service) Register(ctx context.Context, accountID, referredByCode string) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "accountID", accountID, "hasReferralCode", referredByCode != "")

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	if existing, err := s.repo.GetAccount(ctx, accountID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetAccount, err)
	}

	referrer := s.resolveReferrer(ctx, accountID, referredByCode)

	account := &domain.Account{
		ID:           accountID,
		Balance:      0,
		ReferralCode: uuid.NewString(),
	}
	if referrer != nil {
		account.ReferredBy = referrer.ID
	}

	if err := s.repo.InsertAccount(ctx, account); err != nil {
		// Lost a race with a concurrent register; the first writer wins
		if errors.Is(err, domain.ErrAccountAlreadyExists) {
			return s.repo.GetAccount(ctx, accountID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToInsertAccount, err)
	}

	if referrer != nil {
		s.payReferralBonus(ctx, referrer.ID, accountID)
	}

	log.Info(LogMsgAccountRegistered, "accountID", accountID, "referredBy", account.ReferredBy)
	return s.repo.GetAccount(ctx, accountID)
}

// GetAccount retrieves an account by id
func (s *service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	return s.repo.GetAccount(ctx, accountID)
}

// Deposit verifies the settlement payment and credits it atomically
func (s *service) Deposit(ctx context.Context, accountID, settlementRef string) (int64, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDepositCalled, "accountID", accountID, "settlementRef", settlementRef)

	if accountID == "" || settlementRef == "" {
		return 0, fmt.Errorf("%w: account id and settlement ref are required", domain.ErrInvalidInput)
	}

	payment, err := s.settlement.Lookup(ctx, settlementRef)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToLookupPayment, err)
	}
	if payment.AccountID != accountID {
		return 0, fmt.Errorf("%w: payment %s belongs to another account", domain.ErrInvalidInput, settlementRef)
	}
	if payment.Status != settlement.StatusConfirmed {
		return 0, fmt.Errorf("%w: payment %s is %s", domain.ErrSettlementNotConfirmed, settlementRef, payment.Status)
	}

	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	newBalance, err := tx.CreditBalance(ctx, accountID, payment.Amount)
	if err != nil {
		return 0, err
	}

	// The unique index on settlement_ref rejects a second credit of the
	// same payment here.
	record := domain.Transaction{
		AccountID:     accountID,
		Kind:          domain.TransactionDeposit,
		Amount:        payment.Amount,
		Currency:      domain.CurrencyTON,
		Status:        domain.TransactionCompleted,
		Description:   DescriptionDeposit,
		SettlementRef: settlementRef,
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

	metrics.MoneyCredited.Add(float64(payment.Amount))
	log.Info(LogMsgDepositCredited, "accountID", accountID, "amount", payment.Amount)
	return newBalance, nil
}

// resolveReferrer looks up the referrer behind a code. A bad or self-owned
// code degrades to no referrer rather than failing the registration.
func (s *service) resolveReferrer(ctx context.Context, accountID, code string) *domain.Account {
	if code == "" {
		return nil
	}

	referrer, err := s.repo.GetAccountByReferralCode(ctx, code)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnknownReferralCode, "accountID", accountID, "error", err)
		return nil
	}
	if referrer.ID == accountID {
		return nil
	}
	return referrer
}

// payReferralBonus credits the referrer. The new account already exists, so
// a bonus failure is logged and left to reconciliation instead of undoing
// the registration.
func (s *service) payReferralBonus(ctx context.Context, referrerID, referredID string) {
	if s.referralBonus <= 0 {
		return
	}

	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgReferralBonusFailed, "referrerID", referrerID, "error", err)
		return
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.CreditBalance(ctx, referrerID, s.referralBonus); err != nil {
		logger.FromContext(ctx).Error(LogMsgReferralBonusFailed, "referrerID", referrerID, "error", err)
		return
	}

	record := domain.Transaction{
		AccountID:   referrerID,
		Kind:        domain.TransactionReferralBonus,
		Amount:      s.referralBonus,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: DescriptionReferralPrefix + referredID,
	}
	if _, err := tx.InsertTransaction(ctx, record); err != nil {
		logger.FromContext(ctx).Error(LogMsgReferralBonusFailed, "referrerID", referrerID, "error", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgReferralBonusFailed, "referrerID", referrerID, "error", err)
		return
	}

	metrics.MoneyCredited.Add(float64(s.referralBonus))
}
