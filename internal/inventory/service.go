package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/repository"
)

// Service defines the interface for inventory read operations. Mutation only
// happens through the engines so every grant and removal carries its ledger
// record.
type Service interface {
	ListItems(ctx context.Context, accountID string) ([]domain.InventoryItem, error)
	GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error)
	TotalValue(ctx context.Context, accountID string) (int64, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

// ListItems returns everything the account currently owns
func (s *service) ListItems(ctx context.Context, accountID string) ([]domain.InventoryItem, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	return s.repo.ListItems(ctx, accountID)
}

// GetItems resolves the referenced items. Any stale or foreign reference
// fails the whole lookup with ErrInvalidInventoryRef.
func (s *service) GetItems(ctx context.Context, accountID string, ids []uuid.UUID) ([]domain.InventoryItem, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoInputItems
	}

	items, err := s.repo.GetItems(ctx, accountID, ids)
	if err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, domain.ErrInvalidInventoryRef
	}
	return items, nil
}

// TotalValue sums the catalog value of the account's inventory
func (s *service) TotalValue(ctx context.Context, accountID string) (int64, error) {
	if accountID == "" {
		return 0, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	return s.repo.TotalValue(ctx, accountID)
}
