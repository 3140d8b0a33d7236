package caseopen

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Feed is a fixed-size, in-memory buffer of the latest case openings, used
// for the public recent-wins ticker. It is deliberately ephemeral: restarts
// clear it and the ledger remains the durable record.
type Feed struct {
	cache *lru.Cache[uint64, domain.CaseOpening]
	seq   atomic.Uint64
}

// NewFeed creates a feed holding at most size openings
func NewFeed(size int) (*Feed, error) {
	cache, err := lru.New[uint64, domain.CaseOpening](size)
	if err != nil {
		return nil, err
	}
	return &Feed{cache: cache}, nil
}

// Record appends an opening, evicting the oldest once the feed is full
func (f *Feed) Record(opening domain.CaseOpening) {
	f.cache.Add(f.seq.Add(1), opening)
}

// List returns the recorded openings, newest first
func (f *Feed) List() []domain.CaseOpening {
	keys := f.cache.Keys()
	openings := make([]domain.CaseOpening, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if opening, ok := f.cache.Peek(keys[i]); ok {
			openings = append(openings, opening)
		}
	}
	return openings
}
