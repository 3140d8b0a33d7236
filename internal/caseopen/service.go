package caseopen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/catalog"
	"github.com/osse101/CaseVault_Go/internal/concurrency"
	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/metrics"
	"github.com/osse101/CaseVault_Go/internal/repository"
	"github.com/osse101/CaseVault_Go/internal/reward"
)

// Service defines the interface for case-opening operations
type Service interface {
	OpenCase(ctx context.Context, accountID, caseID string) (*domain.CaseOpening, error)
	RecentWins(ctx context.Context) []domain.CaseOpening
}

type service struct {
	repo         repository.CaseOpen
	catalog      *catalog.Catalog
	selector     *reward.Selector
	locks        *concurrency.LockManager
	feed         *Feed
	grantRetries int
	grantBackoff time.Duration
}

// NewService creates a new case-opening service
func NewService(repo repository.CaseOpen, cat *catalog.Catalog, selector *reward.Selector, locks *concurrency.LockManager, feed *Feed, grantRetries int, grantBackoff time.Duration) Service {
	if grantRetries < 1 {
		grantRetries = 1
	}
	return &service{
		repo:         repo,
		catalog:      cat,
		selector:     selector,
		locks:        locks,
		feed:         feed,
		grantRetries: grantRetries,
		grantBackoff: grantBackoff,
	}
}

// OpenCase debits the catalog price, records the ledger row, then draws and
// grants a reward. The debit and its transaction row commit atomically; the
// reward grant happens only after that commit and is retried on failure.
// A grant that still fails after retries surfaces ErrReconciliationRequired
// with the opening context - the money is gone and an operator must resolve it.
func (s *service) OpenCase(ctx context.Context, accountID, caseID string) (*domain.CaseOpening, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenCaseCalled, "accountID", accountID, "caseID", caseID)

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	table, err := s.catalog.Table(caseID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.LockAccount(accountID)
	defer unlock()

	newBalance, err := s.debitWithRetry(ctx, accountID, table)
	if err != nil {
		return nil, err
	}

	// Point of no return: the price is committed. Everything below must
	// produce a reward or escalate.
	item, err := s.selector.Draw(table)
	if err != nil {
		metrics.ReconciliationsRequired.Inc()
		log.Error(LogMsgDrawFailedAfterDebit, "accountID", accountID, "caseID", caseID, "error", err)
		return nil, fmt.Errorf("%w: draw failed for account %s case %s", domain.ErrReconciliationRequired, accountID, caseID)
	}

	opening := &domain.CaseOpening{
		AccountID:  accountID,
		CaseID:     caseID,
		Item:       item,
		NewBalance: newBalance,
		OpenedAt:   time.Now(),
	}

	if err := s.grantReward(ctx, opening); err != nil {
		return nil, err
	}

	metrics.CasesOpened.WithLabelValues(caseID, string(item.Rarity)).Inc()
	metrics.MoneySpent.Add(float64(table.Price))
	s.feed.Record(*opening)

	log.Info(LogMsgCaseOpened, "accountID", accountID, "caseID", caseID, "item", item.Name, "rarity", item.Rarity)
	return opening, nil
}

// debitWithRetry re-runs the debit transaction on transient store failures.
// Nothing has committed when such a failure surfaces, so restarting the
// whole transaction is safe; any other error is final.
func (s *service) debitWithRetry(ctx context.Context, accountID string, table *domain.RewardTable) (int64, error) {
	var newBalance int64
	var err error
	for attempt := 0; attempt < s.grantRetries; attempt++ {
		if attempt > 0 {
			metrics.TransientRetries.Inc()
			time.Sleep(s.grantBackoff)
		}
		newBalance, err = s.debitAndRecord(ctx, accountID, table)
		if err == nil || !errors.Is(err, domain.ErrTransientStore) {
			return newBalance, err
		}
	}
	return 0, err
}

// debitAndRecord commits the price debit and its case_open ledger row in one
// transaction and returns the post-debit balance.
func (s *service) debitAndRecord(ctx context.Context, accountID string, table *domain.RewardTable) (int64, error) {
	tx, err := s.repo.BeginLedgerTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	newBalance, err := tx.DebitBalance(ctx, accountID, table.Price)
	if err != nil {
		return 0, err
	}

	record := domain.Transaction{
		AccountID:   accountID,
		Kind:        domain.TransactionCaseOpen,
		Amount:      -table.Price,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: DescriptionPrefix + table.CaseID,
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

// grantReward inserts the drawn item, retrying transient failures with
// backoff. After the last failed attempt the opening is escalated.
func (s *service) grantReward(ctx context.Context, opening *domain.CaseOpening) error {
	// The debit is committed, so a disconnecting caller must not cancel the
	// grant out from under it.
	ctx = context.WithoutCancel(ctx)

	item := domain.InventoryItem{
		ID:          uuid.New(),
		AccountID:   opening.AccountID,
		Item:        opening.Item,
		AcquiredAt:  opening.OpenedAt,
		SourceLabel: DescriptionPrefix + opening.CaseID,
	}

	var lastErr error
	for attempt := 0; attempt < s.grantRetries; attempt++ {
		if attempt > 0 {
			metrics.GrantRetries.Inc()
			time.Sleep(s.grantBackoff)
		}
		if lastErr = s.repo.AddInventoryItem(ctx, item); lastErr == nil {
			return nil
		}
	}

	metrics.ReconciliationsRequired.Inc()
	logger.FromContext(ctx).Error(LogMsgGrantFailedAfterDebit,
		"accountID", opening.AccountID,
		"caseID", opening.CaseID,
		"item", opening.Item.Name,
		"attempts", s.grantRetries,
		"error", lastErr,
	)
	return fmt.Errorf("%w: account %s case %s item %s", domain.ErrReconciliationRequired, opening.AccountID, opening.CaseID, opening.Item.Name)
}

// RecentWins returns the newest recorded openings, newest first
func (s *service) RecentWins(_ context.Context) []domain.CaseOpening {
	return s.feed.List()
}
