package account

// Ledger row descriptions
const (
	DescriptionDeposit        = "settlement deposit"
	DescriptionReferralPrefix = "referral: "
)

// Log operation identifiers
const (
	LogMsgRegisterCalled    = "Register called"
	LogMsgAccountRegistered = "Account registered"
	LogMsgDepositCalled     = "Deposit called"
	LogMsgDepositCredited   = "Deposit credited"
)

// Warning/error log messages
const (
	LogMsgUnknownReferralCode = "Referral code did not resolve, registering without referrer"
	LogMsgReferralBonusFailed = "Failed to pay referral bonus"
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToGetAccount    = "failed to get account"
	ErrContextFailedToInsertAccount = "failed to insert account"
	ErrContextFailedToLookupPayment = "failed to look up settlement payment"
	ErrContextFailedToBeginTx       = "failed to begin transaction"
	ErrContextFailedToRecordTx      = "failed to record transaction"
	ErrContextFailedToCommitTx      = "failed to commit deposit transaction"
)
