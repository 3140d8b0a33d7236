package admin

// Ledger row descriptions
const (
	DescriptionWithdrawalPrefix  = "withdrawal to "
	DescriptionContractExecution = "contract execution"
)

// Log operation identifiers
const (
	LogMsgWithdrawCalled        = "Withdraw called"
	LogMsgExecuteContractCalled = "ExecuteContract called"
)

// Escalation log messages
const (
	LogMsgSettlementSubmitFailed = "Settlement submit failed after committed debit"
	LogMsgAttachRefFailed        = "Failed to attach settlement ref to committed debit"
)
