package upgrade

// Ledger row and inventory labels
const (
	SourceLabelUpgrade     = "upgrade"
	StakeDescriptionPrefix = "staked: "
	WinDescriptionPrefix   = "won: "
)

// Log operation identifiers
const (
	LogMsgExecuteUpgradeCalled = "ExecuteUpgrade called"
	LogMsgUpgradeWon           = "Upgrade won"
	LogMsgUpgradeLost          = "Upgrade lost"
	LogMsgWinGrantFailed       = "Win grant failed after committed stake"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetItems = "failed to get input items"
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToRecordTx = "failed to record transaction"
	ErrContextFailedToCommitTx = "failed to commit stake transaction"
)
