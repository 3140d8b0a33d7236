// Package reward implements weighted random selection over a case's reward
// table: inverse-CDF sampling of a categorical distribution.
package reward

import (
	"github.com/osse101/CaseVault_Go/internal/domain"
	"github.com/osse101/CaseVault_Go/internal/random"
)

// Selector draws items from reward tables with probability proportional to
// entry weight.
type Selector struct {
	src random.Source
}

// NewSelector creates a Selector using the given random source.
func NewSelector(src random.Source) *Selector {
	return &Selector{src: src}
}

// Draw picks one item from the table. The draw walks entries in their
// configured order subtracting weights from a uniform value in
// [0, totalWeight); the entry that drives the remainder to <= 0 wins.
// Residual floating-point rounding can let the loop fall through without a
// match; that case selects the last entry, never an error.
func (s *Selector) Draw(table *domain.RewardTable) (domain.Item, error) {
	if table == nil || len(table.Entries) == 0 {
		return domain.Item{}, domain.ErrEmptyRewardTable
	}

	totalWeight := table.TotalWeight()
	if totalWeight <= 0 {
		return domain.Item{}, domain.ErrEmptyRewardTable
	}

	r := s.src.Float64() * totalWeight
	for _, entry := range table.Entries {
		r -= entry.Weight
		if r <= 0 {
			return entry.Item, nil
		}
	}

	// Rounding fallback
	return table.Entries[len(table.Entries)-1].Item, nil
}

// Bernoulli draws a single success/failure outcome with probability p.
// p is clamped to [0, 1].
func (s *Selector) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.src.Float64() < p
}
