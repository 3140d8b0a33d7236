package admin

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/settlement"
)

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error) {
	args := m.Called(ctx, accountID, amount, kind, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, error) {
	args := m.Called(ctx, accountID, amount, kind, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) DebitRecorded(ctx context.Context, accountID string, amount int64, kind domain.TransactionKind, description string) (int64, int64, error) {
	args := m.Called(ctx, accountID, amount, kind, description)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) AttachSettlementRef(ctx context.Context, transactionID int64, ref string) error {
	args := m.Called(ctx, transactionID, ref)
	return args.Error(0)
}

// MockSettlementClient
type MockSettlementClient struct {
	mock.Mock
}

func (m *MockSettlementClient) Lookup(ctx context.Context, ref string) (*settlement.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.Payment), args.Error(1)
}

func (m *MockSettlementClient) Submit(ctx context.Context, accountID string, amount int64, destination string) (string, error) {
	args := m.Called(ctx, accountID, amount, destination)
	return args.String(0), args.Error(1)
}
