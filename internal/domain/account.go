package domain

import "time"

// Account holds a user's spendable balance. Balances are stored in minor
// units (nanoTON) as int64 to avoid floating-point money arithmetic.
// An account's balance is never negative; every balance change is paired
// with exactly one Transaction row.
type Account struct {
	ID           string    `json:"account_id" db:"account_id"`
	Balance      int64     `json:"balance" db:"balance"`
	ReferralCode string    `json:"referral_code,omitempty" db:"referral_code"`
	ReferredBy   string    `json:"referred_by,omitempty" db:"referred_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastActiveAt time.Time `json:"last_active_at" db:"last_active_at"`
}
