// Package catalog owns the case configuration: every purchasable case, its
// price, and its weighted reward table. The catalog is loaded once at
// process start and treated as trusted, read-only truth for the rest of the
// run; caller-supplied prices are never honored over it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

// Config represents the JSON configuration for cases
type Config struct {
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Cases       []CaseDef `json:"cases" validate:"required,min=1,dive"`
}

// CaseDef is a single case definition in the JSON
type CaseDef struct {
	CaseID  string     `json:"case_id" validate:"required"`
	Price   int64      `json:"price" validate:"required,gt=0"`
	Entries []EntryDef `json:"entries" validate:"required,min=1,dive"`
}

// EntryDef is one weighted reward inside a case
type EntryDef struct {
	Name   string  `json:"name" validate:"required"`
	Rarity string  `json:"rarity" validate:"required"`
	Value  int64   `json:"value" validate:"required,gt=0"`
	Weight float64 `json:"weight" validate:"required,gt=0"`
}

// Catalog resolves case identifiers to reward tables. Immutable after Load.
type Catalog struct {
	tables map[string]*domain.RewardTable
	order  []string
}

// Load reads, validates, and indexes the case configuration file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case catalog: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse case catalog: %w", err)
	}

	return New(&config)
}

// New builds a Catalog from an already-parsed config.
func New(config *Config) (*Catalog, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil catalog config", domain.ErrEmptyRewardTable)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid case catalog: %w", err)
	}

	c := &Catalog{tables: make(map[string]*domain.RewardTable, len(config.Cases))}
	for _, def := range config.Cases {
		if _, exists := c.tables[def.CaseID]; exists {
			return nil, fmt.Errorf("duplicate case id %q in catalog", def.CaseID)
		}

		table := &domain.RewardTable{
			CaseID:  def.CaseID,
			Price:   def.Price,
			Entries: make([]domain.RewardEntry, 0, len(def.Entries)),
		}
		for _, e := range def.Entries {
			rarity := domain.Rarity(e.Rarity)
			if !rarity.Valid() {
				return nil, fmt.Errorf("case %q: unknown rarity %q for item %q", def.CaseID, e.Rarity, e.Name)
			}
			table.Entries = append(table.Entries, domain.RewardEntry{
				Item:   domain.Item{Name: e.Name, Rarity: rarity, Value: e.Value},
				Weight: e.Weight,
			})
		}
		if table.TotalWeight() <= 0 {
			return nil, fmt.Errorf("case %q: %w", def.CaseID, domain.ErrEmptyRewardTable)
		}

		c.tables[def.CaseID] = table
		c.order = append(c.order, def.CaseID)
	}

	return c, nil
}

// Table returns the reward table for a case id.
func (c *Catalog) Table(caseID string) (*domain.RewardTable, error) {
	table, ok := c.tables[caseID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCaseNotFound, caseID)
	}
	return table, nil
}

// Price returns the catalog price for a case id. The engine always resolves
// the price here, never from the request.
func (c *Catalog) Price(caseID string) (int64, error) {
	table, err := c.Table(caseID)
	if err != nil {
		return 0, err
	}
	return table.Price, nil
}

// Cases returns all reward tables in configuration order.
func (c *Catalog) Cases() []*domain.RewardTable {
	tables := make([]*domain.RewardTable, 0, len(c.order))
	for _, id := range c.order {
		tables = append(tables, c.tables[id])
	}
	return tables
}

// ItemsValuedAtLeast returns every distinct catalog item whose value is
// >= minValue, sorted by value ascending then name. Used to build upgrade
// target lists; an empty result is a valid outcome.
func (c *Catalog) ItemsValuedAtLeast(minValue int64) []domain.Item {
	seen := make(map[string]bool)
	var items []domain.Item
	for _, id := range c.order {
		for _, entry := range c.tables[id].Entries {
			if entry.Item.Value < minValue || seen[entry.Item.Name] {
				continue
			}
			seen[entry.Item.Name] = true
			items = append(items, entry.Item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value < items[j].Value
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// ItemByName resolves a catalog item by name.
func (c *Catalog) ItemByName(name string) (domain.Item, error) {
	for _, id := range c.order {
		for _, entry := range c.tables[id].Entries {
			if entry.Item.Name == name {
				return entry.Item, nil
			}
		}
	}
	return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, name)
}
