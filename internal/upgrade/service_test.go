package upgrade

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CaseVault_Go/internal/catalog"
	"github.com/osse101/CaseVault_Go/internal/concurrency"
	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/random"
	"github.com/osse101/CaseVault_Go/internal/reward"
)

const testHouseFactor = 0.9

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(&catalog.Config{
		Cases: []catalog.CaseDef{
			{CaseID: "basic", Price: 100, Entries: []catalog.EntryDef{
				{Name: "Delicious Cake", Rarity: "common", Value: 50, Weight: 60},
				{Name: "Green Star", Rarity: "rare", Value: 150, Weight: 40},
			}},
			{CaseID: "premium", Price: 300, Entries: []catalog.EntryDef{
				{Name: "Telegram Premium", Rarity: "legendary", Value: 500, Weight: 100},
			}},
		},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T, repo *MockRepository, drawValues ...float64) Service {
	t.Helper()
	selector := reward.NewSelector(random.NewSequence(drawValues...))
	return NewService(repo, testCatalog(t), selector, concurrency.NewLockManager(), testHouseFactor, 3, 0)
}

func stakeItems(accountID string) ([]domain.InventoryItem, []uuid.UUID) {
	items := []domain.InventoryItem{
		{ID: uuid.New(), AccountID: accountID, Item: domain.Item{Name: "Delicious Cake", Rarity: domain.RarityCommon, Value: 50}},
		{ID: uuid.New(), AccountID: accountID, Item: domain.Item{Name: "Green Star", Rarity: domain.RarityRare, Value: 150}},
	}
	ids := []uuid.UUID{items[0].ID, items[1].ID}
	return items, ids
}

func TestSuccessChance(t *testing.T) {
	s := newTestService(t, new(MockRepository))

	tests := []struct {
		name        string
		inputValue  int64
		targetValue int64
		want        float64
	}{
		{"zero input", 0, 500, 0},
		{"zero target", 200, 0, 0},
		{"negative input", -10, 500, 0},
		{"proportional", 200, 500, 0.4 * testHouseFactor},
		{"input above target clamps to house factor", 600, 500, testHouseFactor},
		{"equal values clamp to house factor", 500, 500, testHouseFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.SuccessChance(tt.inputValue, tt.targetValue), 1e-9)
		})
	}
}

func TestListTargets(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo)

	items, ids := stakeItems("acct-1") // combined value 200
	ctx := context.Background()
	repo.On("GetItems", ctx, "acct-1", ids).Return(items, nil)

	targets, err := s.ListTargets(ctx, "acct-1", ids)

	require.NoError(t, err)
	require.Len(t, targets, 1, "only items strictly above the input value qualify")
	assert.Equal(t, "Telegram Premium", targets[0].Item.Name)
	assert.InDelta(t, 0.4*testHouseFactor, targets[0].Chance, 1e-9)
	repo.AssertExpectations(t)
}

func TestListTargets_StaleReference(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo)

	items, ids := stakeItems("acct-1")
	ctx := context.Background()
	repo.On("GetItems", ctx, "acct-1", ids).Return(items[:1], nil)

	_, err := s.ListTargets(ctx, "acct-1", ids)

	assert.ErrorIs(t, err, domain.ErrInvalidInventoryRef)
}

func TestListTargets_NoInputs(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo)

	_, err := s.ListTargets(context.Background(), "acct-1", nil)

	assert.ErrorIs(t, err, domain.ErrNoInputItems)
	repo.AssertNotCalled(t, "GetItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteUpgrade_Win(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockInventoryTx)
	s := newTestService(t, repo, 0.0) // guaranteed below any positive chance

	items, ids := stakeItems("acct-1")
	ctx := context.Background()
	repo.On("BeginInventoryTx", ctx).Return(tx, nil)
	tx.On("TakeItems", ctx, "acct-1", ids).Return(items, nil)
	tx.On("InsertTransaction", ctx, mock.MatchedBy(func(record domain.Transaction) bool {
		return record.Kind == domain.TransactionUpgradeStake && record.Amount == -200
	})).Return(int64(1), nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	repo.On("GrantItem", mock.Anything, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.AccountID == "acct-1" && item.Item.Name == "Telegram Premium"
	}), mock.MatchedBy(func(record domain.Transaction) bool {
		return record.Kind == domain.TransactionUpgradeWin && record.Amount == 500
	})).Return(nil)

	attempt, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	require.NoError(t, err)
	assert.True(t, attempt.Success)
	require.NotNil(t, attempt.ResultItem)
	assert.Equal(t, "Telegram Premium", attempt.ResultItem.Name)
	assert.Equal(t, int64(200), attempt.InputValue)
	assert.InDelta(t, 0.4*testHouseFactor, attempt.ComputedChance, 1e-9)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestExecuteUpgrade_LossConsumesStake(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockInventoryTx)
	s := newTestService(t, repo, 0.99) // above any chance the catalog can produce

	items, ids := stakeItems("acct-1")
	ctx := context.Background()
	repo.On("BeginInventoryTx", ctx).Return(tx, nil)
	tx.On("TakeItems", ctx, "acct-1", ids).Return(items, nil)
	tx.On("InsertTransaction", ctx, mock.Anything).Return(int64(1), nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()

	attempt, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	require.NoError(t, err)
	assert.False(t, attempt.Success)
	assert.Nil(t, attempt.ResultItem)
	repo.AssertNotCalled(t, "GrantItem", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertCalled(t, "Commit", ctx)
}

func TestExecuteUpgrade_TargetTooCheapRollsBack(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockInventoryTx)
	s := newTestService(t, repo, 0.0)

	items, ids := stakeItems("acct-1") // value 200 vs Green Star's 150
	ctx := context.Background()
	repo.On("BeginInventoryTx", ctx).Return(tx, nil)
	tx.On("TakeItems", ctx, "acct-1", ids).Return(items, nil)
	tx.On("Rollback", ctx).Return(nil)

	_, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Green Star")

	assert.ErrorIs(t, err, domain.ErrTargetTooCheap)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNotCalled(t, "GrantItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteUpgrade_InvalidReference(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockInventoryTx)
	s := newTestService(t, repo, 0.0)

	_, ids := stakeItems("acct-1")
	ctx := context.Background()
	repo.On("BeginInventoryTx", ctx).Return(tx, nil)
	tx.On("TakeItems", ctx, "acct-1", ids).Return(nil, domain.ErrInvalidInventoryRef)
	tx.On("Rollback", ctx).Return(nil)

	_, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	assert.ErrorIs(t, err, domain.ErrInvalidInventoryRef)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestExecuteUpgrade_TargetNotFound(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo, 0.0)

	_, ids := stakeItems("acct-1")
	_, err := s.ExecuteUpgrade(context.Background(), "acct-1", ids, "Imaginary Item")

	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	repo.AssertNotCalled(t, "BeginInventoryTx", mock.Anything)
}

func TestExecuteUpgrade_NoInputs(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo, 0.0)

	_, err := s.ExecuteUpgrade(context.Background(), "acct-1", nil, "Telegram Premium")

	assert.ErrorIs(t, err, domain.ErrNoInputItems)
}

func TestExecuteUpgrade_TransientStakeRetriedThenSucceeds(t *testing.T) {
	repo := new(MockRepository)
	tx1 := new(MockInventoryTx)
	tx2 := new(MockInventoryTx)
	s := newTestService(t, repo, 0.99) // loss keeps the flow short

	items, ids := stakeItems("acct-1")
	ctx := context.Background()
	transient := fmt.Errorf("%w: deadlock detected", domain.ErrTransientStore)
	repo.On("BeginInventoryTx", ctx).Return(tx1, nil).Once()
	repo.On("BeginInventoryTx", ctx).Return(tx2, nil).Once()
	tx1.On("TakeItems", ctx, "acct-1", ids).Return(nil, transient)
	tx1.On("Rollback", ctx).Return(nil)
	tx2.On("TakeItems", ctx, "acct-1", ids).Return(items, nil)
	tx2.On("InsertTransaction", ctx, mock.Anything).Return(int64(1), nil)
	tx2.On("Commit", ctx).Return(nil)
	tx2.On("Rollback", ctx).Return(nil).Maybe()

	attempt, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	require.NoError(t, err)
	assert.False(t, attempt.Success)
	assert.Equal(t, int64(200), attempt.InputValue)
	repo.AssertExpectations(t)
	tx1.AssertExpectations(t)
	tx2.AssertExpectations(t)
}

func TestExecuteUpgrade_TransientStakeExhaustsRetries(t *testing.T) {
	repo := new(MockRepository)
	s := newTestService(t, repo, 0.0)

	_, ids := stakeItems("acct-1")
	ctx := context.Background()
	transient := fmt.Errorf("%w: connection reset", domain.ErrTransientStore)
	repo.On("BeginInventoryTx", ctx).Return(nil, transient).Times(3)

	_, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	assert.ErrorIs(t, err, domain.ErrTransientStore)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "GrantItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteUpgrade_WinGrantExhaustsRetries(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockInventoryTx)
	s := newTestService(t, repo, 0.0)

	items, ids := stakeItems("acct-1")
	ctx := context.Background()
	repo.On("BeginInventoryTx", ctx).Return(tx, nil)
	tx.On("TakeItems", ctx, "acct-1", ids).Return(items, nil)
	tx.On("InsertTransaction", ctx, mock.Anything).Return(int64(1), nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(nil).Maybe()
	repo.On("GrantItem", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset")).Times(3)

	_, err := s.ExecuteUpgrade(ctx, "acct-1", ids, "Telegram Premium")

	assert.ErrorIs(t, err, domain.ErrReconciliationRequired)
	repo.AssertExpectations(t)
}
