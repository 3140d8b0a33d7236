package upgrade

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// Target is a potential upgrade outcome: a catalog item the input could be
// gambled into, with the chance that gamble would succeed.
type Target struct {
	Item   domain.Item `json:"item"`
	Chance float64     `json:"chance"`
}

// Service defines the interface for upgrade operations
type Service interface {
	SuccessChance(inputValue, targetValue int64) float64
	ListTargets(ctx context.Context, accountID string, inputItemIDs []uuid.UUID) ([]Target, error)
	ExecuteUpgrade(ctx context.Context, accountID string, inputItemIDs []uuid.UUID, targetName string) (*domain.UpgradeAttempt, error)
}

type service struct {
	repo         repository.Upgrade
	catalog      *catalog.Catalog
	selector     *reward.Selector
	locks        *concurrency.LockManager
	houseFactor  float64
	grantRetries int
	grantBackoff time.Duration
}

// NewService creates a new upgrade service
func NewService(repo repository.Upgrade, cat *catalog.Catalog, selector *reward.Selector, locks *concurrency.LockManager, houseFactor float64, grantRetries int, grantBackoff time.Duration) Service {
	if grantRetries < 1 {
		grantRetries = 1
	}
	return &service{
		repo:         repo,
		catalog:      cat,
		selector:     selector,
		locks:        locks,
		houseFactor:  houseFactor,
		grantRetries: grantRetries,
		grantBackoff: grantBackoff,
	}
}

// SuccessChance computes the win probability for gambling inputValue worth of
// items into a target worth targetValue: the value ratio clamped to [0, 1],
// scaled down by the house factor. A non-positive target yields zero.
func (s *service) SuccessChance(inputValue, targetValue int64) float64 {
	if inputValue <= 0 || targetValue <= 0 {
		return 0
	}
	ratio := float64(inputValue) / float64(targetValue)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * s.houseFactor
}

// ListTargets returns every catalog item strictly more valuable than the
// referenced input items, with the computed success chance for each. The
// inputs are only read, never consumed. An empty list is a valid result.
func (s *service) ListTargets(ctx context.Context, accountID string, inputItemIDs []uuid.UUID) ([]Target, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if len(inputItemIDs) == 0 {
		return nil, domain.ErrNoInputItems
	}

	items, err := s.repo.GetItems(ctx, accountID, inputItemIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetItems, err)
	}
	if len(items) != len(inputItemIDs) {
		return nil, domain.ErrInvalidInventoryRef
	}

	inputValue := sumValues(items)
	candidates := s.catalog.ItemsValuedAtLeast(inputValue + 1)

	targets := make([]Target, 0, len(candidates))
	for _, item := range candidates {
		targets = append(targets, Target{
			Item:   item,
			Chance: s.SuccessChance(inputValue, item.Value),
		})
	}
	return targets, nil
}

// ExecuteUpgrade gambles the input items for the target. The inputs and the
// upgrade_stake record commit in one transaction before the outcome is drawn,
// so the stake is consumed win or lose and a crash between commit and draw
// costs the house nothing. A failed attempt grants nothing; there is no
// partial refund.
func (s *service) ExecuteUpgrade(ctx context.Context, accountID string, inputItemIDs []uuid.UUID, targetName string) (*domain.UpgradeAttempt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExecuteUpgradeCalled, "accountID", accountID, "inputs", len(inputItemIDs), "target", targetName)

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if len(inputItemIDs) == 0 {
		return nil, domain.ErrNoInputItems
	}

	target, err := s.catalog.ItemByName(targetName)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.LockAccount(accountID)
	defer unlock()

	inputValue, err := s.consumeStakeWithRetry(ctx, accountID, inputItemIDs, target)
	if err != nil {
		return nil, err
	}

	// Stake is committed. From here the only open question is the outcome.
	chance := s.SuccessChance(inputValue, target.Value)
	success := s.selector.Bernoulli(chance)

	attempt := &domain.UpgradeAttempt{
		AccountID:      accountID,
		InputItemIDs:   inputItemIDs,
		InputValue:     inputValue,
		TargetItem:     target,
		ComputedChance: chance,
		Success:        success,
		CreatedAt:      time.Now(),
	}

	if !success {
		metrics.UpgradeAttempts.WithLabelValues(metrics.OutcomeLoss).Inc()
		log.Info(LogMsgUpgradeLost, "accountID", accountID, "target", target.Name, "chance", chance)
		return attempt, nil
	}

	if err := s.grantWin(ctx, accountID, target, inputValue); err != nil {
		return nil, err
	}
	attempt.ResultItem = &target

	metrics.UpgradeAttempts.WithLabelValues(metrics.OutcomeWin).Inc()
	log.Info(LogMsgUpgradeWon, "accountID", accountID, "target", target.Name, "chance", chance)
	return attempt, nil
}

// consumeStakeWithRetry re-runs the stake transaction on transient store
// failures. The stake has not committed when such a failure surfaces and no
// draw has happened yet, so a clean restart is safe.
func (s *service) consumeStakeWithRetry(ctx context.Context, accountID string, inputItemIDs []uuid.UUID, target domain.Item) (int64, error) {
	var inputValue int64
	var err error
	for attempt := 0; attempt < s.grantRetries; attempt++ {
		if attempt > 0 {
			metrics.TransientRetries.Inc()
			time.Sleep(s.grantBackoff)
		}
		inputValue, err = s.consumeStake(ctx, accountID, inputItemIDs, target)
		if err == nil || !errors.Is(err, domain.ErrTransientStore) {
			return inputValue, err
		}
	}
	return 0, err
}

// consumeStake removes the input items and records the upgrade_stake row in
// one transaction. Validation failures roll everything back, so a rejected
// attempt never costs the player anything.
func (s *service) consumeStake(ctx context.Context, accountID string, inputItemIDs []uuid.UUID, target domain.Item) (int64, error) {
	tx, err := s.repo.BeginInventoryTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	items, err := tx.TakeItems(ctx, accountID, inputItemIDs)
	if err != nil {
		return 0, err
	}

	inputValue := sumValues(items)
	if target.Value <= inputValue {
		return 0, fmt.Errorf("%w: target %s (%d) vs input %d", domain.ErrTargetTooCheap, target.Name, target.Value, inputValue)
	}

	record := domain.Transaction{
		AccountID:   accountID,
		Kind:        domain.TransactionUpgradeStake,
		Amount:      -inputValue,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: stakeDescription(items, target),
	}
	if _, err := tx.InsertTransaction(ctx, record); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToRecordTx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return inputValue, nil
}

// grantWin inserts the won item and its upgrade_win record, retrying
// transient failures. After the last failed attempt the win is escalated:
// the stake is already gone and an operator must grant the item manually.
func (s *service) grantWin(ctx context.Context, accountID string, target domain.Item, inputValue int64) error {
	// The stake is committed and the draw is spent; a disconnecting caller
	// must not cancel the grant.
	ctx = context.WithoutCancel(ctx)

	item := domain.InventoryItem{
		ID:          uuid.New(),
		AccountID:   accountID,
		Item:        target,
		AcquiredAt:  time.Now(),
		SourceLabel: SourceLabelUpgrade,
	}
	record := domain.Transaction{
		AccountID:   accountID,
		Kind:        domain.TransactionUpgradeWin,
		Amount:      target.Value,
		Currency:    domain.CurrencyTON,
		Status:      domain.TransactionCompleted,
		Description: fmt.Sprintf("%s%s (staked %d)", WinDescriptionPrefix, target.Name, inputValue),
	}

	var lastErr error
	for attempt := 0; attempt < s.grantRetries; attempt++ {
		if attempt > 0 {
			metrics.GrantRetries.Inc()
			time.Sleep(s.grantBackoff)
		}
		if lastErr = s.repo.GrantItem(ctx, item, record); lastErr == nil {
			return nil
		}
	}

	metrics.ReconciliationsRequired.Inc()
	logger.FromContext(ctx).Error(LogMsgWinGrantFailed,
		"accountID", accountID,
		"target", target.Name,
		"attempts", s.grantRetries,
		"error", lastErr,
	)
	return fmt.Errorf("%w: account %s target %s", domain.ErrReconciliationRequired, accountID, target.Name)
}

func sumValues(items []domain.InventoryItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Item.Value
	}
	return total
}

func stakeDescription(items []domain.InventoryItem, target domain.Item) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Item.Name)
	}
	return fmt.Sprintf("%s%s -> %s", StakeDescriptionPrefix, strings.Join(names, ", "), target.Name)
}
