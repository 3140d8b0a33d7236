package domain

import "time"

// TransactionKind classifies a ledger row
type TransactionKind string

const (
	TransactionCaseOpen          TransactionKind = "case_open"
	TransactionUpgradeStake      TransactionKind = "upgrade_stake"
	TransactionUpgradeWin        TransactionKind = "upgrade_win"
	TransactionReferralBonus     TransactionKind = "referral_bonus"
	TransactionAdminWithdrawal   TransactionKind = "admin_withdrawal"
	TransactionDeposit           TransactionKind = "deposit"
	TransactionContractExecution TransactionKind = "contract_execution"
)

// TransactionStatus is the settlement state of a ledger row
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is an immutable, append-only ledger row. Amount is signed and
// in minor units: debits are negative, credits positive. The only permitted
// mutation after insert is attaching an external settlement reference.
type Transaction struct {
	ID            int64             `json:"id" db:"transaction_id"`
	AccountID     string            `json:"account_id" db:"account_id"`
	Kind          TransactionKind   `json:"kind" db:"kind"`
	Amount        int64             `json:"amount" db:"amount"`
	Currency      string            `json:"currency" db:"currency"`
	Status        TransactionStatus `json:"status" db:"status"`
	Description   string            `json:"description" db:"description"`
	SettlementRef string            `json:"settlement_ref,omitempty" db:"settlement_ref"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}

// CurrencyTON is the only currency the engine denominates in.
const CurrencyTON = "TON"
