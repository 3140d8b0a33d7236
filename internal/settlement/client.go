// Package settlement abstracts the external payment network. The engine
// never talks to the chain directly: deposits are verified and withdrawals
// submitted through a Client, and the ledger keeps the settlement reference
// for audit.
package settlement

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Status is the settlement network's view of a payment
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Payment is one settlement-network transfer
type Payment struct {
	Ref         string `json:"ref"`
	AccountID   string `json:"account_id"`
	Amount      int64  `json:"amount"`
	Destination string `json:"destination,omitempty"`
	Status      Status `json:"status"`
}

// Client defines the interface to the settlement network
type Client interface {
	// Lookup fetches a payment by its settlement reference.
	Lookup(ctx context.Context, ref string) (*Payment, error)

	// Submit sends an outbound transfer and returns its settlement reference.
	Submit(ctx context.Context, accountID string, amount int64, destination string) (string, error)
}

// StubClient is an in-memory Client for development and tests. Inbound
// payments are registered by hand; submitted transfers confirm immediately.
type StubClient struct {
	mu       sync.RWMutex
	payments map[string]*Payment
}

// NewStubClient creates an empty StubClient
func NewStubClient() *StubClient {
	return &StubClient{payments: make(map[string]*Payment)}
}

// RegisterPayment records an inbound payment the stub will report on Lookup
func (c *StubClient) RegisterPayment(payment Payment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := payment
	c.payments[payment.Ref] = &p
}

// Lookup fetches a registered payment
func (c *StubClient) Lookup(_ context.Context, ref string) (*Payment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	payment, ok := c.payments[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettlementNotFound, ref)
	}
	p := *payment
	return &p, nil
}

// Submit records an outbound transfer as immediately confirmed
func (c *StubClient) Submit(_ context.Context, accountID string, amount int64, destination string) (string, error) {
	if amount <= 0 {
		return "", domain.ErrInvalidAmount
	}

	ref := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payments[ref] = &Payment{
		Ref:         ref,
		AccountID:   accountID,
		Amount:      amount,
		Destination: destination,
		Status:      StatusConfirmed,
	}
	return ref, nil
}
