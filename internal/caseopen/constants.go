package caseopen

// DescriptionPrefix labels case_open ledger rows and granted items with the
// case they came from
const DescriptionPrefix = "case:"

// Log operation identifiers
const (
	LogMsgOpenCaseCalled = "OpenCase called"
	LogMsgCaseOpened     = "Case opened"
)

// Escalation log messages
const (
	LogMsgDrawFailedAfterDebit  = "Reward draw failed after committed debit"
	LogMsgGrantFailedAfterDebit = "Reward grant failed after committed debit"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToRecordTx = "failed to record transaction"
	ErrContextFailedToCommitTx = "failed to commit debit transaction"
)
