package admin

import (
	"context"
	"fmt"

	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/ledger"
	"github.com/osse101/CaseVault_Go/internal/logger"
	"github.com/osse101/CaseVault_Go/internal/settlement"
)

// Withdrawal is the result of an admin-initiated payout
type Withdrawal struct {
	TransactionID int64  `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Amount        int64  `json:"amount"`
	Destination   string `json:"destination"`
	SettlementRef string `json:"settlement_ref"`
	NewBalance    int64  `json:"new_balance"`
}

// Service defines the interface for operator-only ledger operations
type Service interface {
	// Withdraw debits the account, submits the payout to the settlement
	// network, and attaches the settlement reference to the ledger row.
	Withdraw(ctx context.Context, accountID string, amount int64, destination string) (*Withdrawal, error)

	// ExecuteContract debits the account for an on-chain contract call and
	// records it with its settlement reference.
	ExecuteContract(ctx context.Context, accountID string, amount int64, description string) (*Withdrawal, error)
}

type service struct {
	ledgerSvc  ledger.Service
	settlement settlement.Client
}

// NewService creates a new admin service
func NewService(ledgerSvc ledger.Service, settlementClient settlement.Client) Service {
	return &service{ledgerSvc: ledgerSvc, settlement: settlementClient}
}

// Withdraw pays funds out of an account
func (s *service) Withdraw(ctx context.Context, accountID string, amount int64, destination string) (*Withdrawal, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWithdrawCalled, "accountID", accountID, "amount", amount, "destination", destination)

	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}

	return s.debitAndSettle(ctx, accountID, amount, destination, domain.TransactionAdminWithdrawal, DescriptionWithdrawalPrefix+destination)
}

// ExecuteContract charges an account for an on-chain contract execution
func (s *service) ExecuteContract(ctx context.Context, accountID string, amount int64, description string) (*Withdrawal, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExecuteContractCalled, "accountID", accountID, "amount", amount)

	if description == "" {
		description = DescriptionContractExecution
	}
	return s.debitAndSettle(ctx, accountID, amount, "", domain.TransactionContractExecution, description)
}

// debitAndSettle debits first so the payout can never exceed the balance,
// then submits to the settlement network. A submit failure after the debit is
// escalated for reconciliation; the ledger row stays without a settlement ref
// so the operator can find it.
func (s *service) debitAndSettle(ctx context.Context, accountID string, amount int64, destination string, kind domain.TransactionKind, description string) (*Withdrawal, error) {
	newBalance, txID, err := s.ledgerSvc.DebitRecorded(ctx, accountID, amount, kind, description)
	if err != nil {
		return nil, err
	}

	ref, err := s.settlement.Submit(ctx, accountID, amount, destination)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSettlementSubmitFailed, "accountID", accountID, "transactionID", txID, "error", err)
		return nil, fmt.Errorf("%w: transaction %d debited but not settled", domain.ErrReconciliationRequired, txID)
	}

	if err := s.ledgerSvc.AttachSettlementRef(ctx, txID, ref); err != nil {
		logger.FromContext(ctx).Error(LogMsgAttachRefFailed, "transactionID", txID, "settlementRef", ref, "error", err)
		return nil, fmt.Errorf("%w: transaction %d settled as %s but not recorded", domain.ErrReconciliationRequired, txID, ref)
	}

	return &Withdrawal{
		TransactionID: txID,
		AccountID:     accountID,
		Amount:        amount,
		Destination:   destination,
		SettlementRef: ref,
		NewBalance:    newBalance,
	}, nil
}
