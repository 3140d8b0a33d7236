package config

// Service defaults
const (
	DefaultServiceName = "case-vault"
	DefaultCatalogPath = "configs/cases.json"
)

// Engine policy defaults
const (
	// DefaultHouseFactorStr keeps expected upgrade value house-favored.
	DefaultHouseFactorStr = "0.90"

	DefaultGrantRetries        = 3
	DefaultGrantRetryBackoffMs = 50

	// DefaultReferralBonus is 0.1 TON in nanoTON.
	DefaultReferralBonus int64 = 100_000_000

	DefaultRecentWinsSize = 50
)
