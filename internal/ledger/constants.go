package ledger

// History pagination bounds
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Log operation identifiers
const (
	LogMsgCreditCalled = "Credit called"
	LogMsgDebitCalled  = "Debit called"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToRecordTx = "failed to record transaction"
	ErrContextFailedToCommitTx = "failed to commit ledger transaction"
)
