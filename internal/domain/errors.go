package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound      = "account not found"
	ErrMsgAccountAlreadyExists = "account already exists"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Catalog errors
	ErrMsgCaseNotFound     = "case not found"
	ErrMsgEmptyRewardTable = "reward table is empty or has no weight"

	// Inventory errors
	ErrMsgInvalidInventoryRef = "inventory item not owned or already consumed"

	// Upgrade errors
	ErrMsgTargetNotFound = "upgrade target not found"
	ErrMsgNoInputItems   = "at least one input item is required"
	ErrMsgTargetTooCheap = "target value must exceed input value"

	// Store errors
	ErrMsgTransientStore         = "transient store failure"
	ErrMsgReconciliationRequired = "reward could not be granted after committed debit; manual reconciliation required"

	// Settlement errors
	ErrMsgSettlementNotConfirmed = "settlement is not confirmed"
	ErrMsgSettlementNotFound     = "settlement not found"
	ErrMsgDuplicateSettlementRef = "settlement reference already credited"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound      = errors.New(ErrMsgAccountNotFound)
	ErrAccountAlreadyExists = errors.New(ErrMsgAccountAlreadyExists)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Catalog errors (fatal to the request, never retried)
	ErrCaseNotFound     = errors.New(ErrMsgCaseNotFound)
	ErrEmptyRewardTable = errors.New(ErrMsgEmptyRewardTable)

	// Inventory errors (caller must retry with fresh state)
	ErrInvalidInventoryRef = errors.New(ErrMsgInvalidInventoryRef)

	// Upgrade errors
	ErrTargetNotFound = errors.New(ErrMsgTargetNotFound)
	ErrNoInputItems   = errors.New(ErrMsgNoInputItems)
	ErrTargetTooCheap = errors.New(ErrMsgTargetTooCheap)

	// Store errors. ErrTransientStore is retried locally with backoff before
	// surfacing; ErrReconciliationRequired marks the point-of-no-return
	// failure and is always logged to the operator channel.
	ErrTransientStore         = errors.New(ErrMsgTransientStore)
	ErrReconciliationRequired = errors.New(ErrMsgReconciliationRequired)

	// Settlement errors
	ErrSettlementNotConfirmed = errors.New(ErrMsgSettlementNotConfirmed)
	ErrSettlementNotFound     = errors.New(ErrMsgSettlementNotFound)
	ErrDuplicateSettlementRef = errors.New(ErrMsgDuplicateSettlementRef)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
