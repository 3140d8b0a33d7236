package concurrency

import (
	"sync"
)

// AccountLockPrefix namespaces per-account locks so other lock families can
// share the same manager without colliding.
const AccountLockPrefix = "account:"

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// LockAccount serializes gambling operations for a single account within this
// process and returns the unlock function. Cross-process safety still relies
// on the conditional balance update, so this lock only reduces contention and
// keeps an account's operations ordered.
func (lm *LockManager) LockAccount(accountID string) func() {
	lock := lm.GetLock(AccountLockPrefix + accountID)
	lock.Lock()
	return lock.Unlock
}
