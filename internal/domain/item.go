package domain

// Item is a reward definition inside a case's reward table.
// Items are configuration: loaded at process start and immutable for the
// lifetime of the run. Value is in minor units (nanoTON).
type Item struct {
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	Value  int64  `json:"value"`
}

// Rarity represents the visual rarity tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether the rarity is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// RewardEntry pairs an item with its relative selection weight.
// Weight is not a probability; only the ratio against the table's total
// weight matters.
type RewardEntry struct {
	Item   Item    `json:"item"`
	Weight float64 `json:"weight"`
}

// RewardTable is the weighted-probability configuration for one case.
// Entry order is stable but has no effect on outcome distribution.
type RewardTable struct {
	CaseID  string        `json:"case_id"`
	Price   int64         `json:"price"`
	Entries []RewardEntry `json:"entries"`
}

// TotalWeight sums the entry weights.
func (t *RewardTable) TotalWeight() float64 {
	var total float64
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}
