package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"debt-payoff/domain"
)

// Seed is the JSON document used to populate the in-memory collaborators.
//
//	{
//	  "plan":  {"monthly_capacity": 1500, "start_date": "2025-01-01"},
//	  "debts": [{"name": "Visa", "balance": 4200, "annual_rate": 0.2499,
//	             "minimum_payment": 120, "priority_rank": 1}]
//	}
type Seed struct {
	Plan  *domain.PlanSettings `json:"plan"`
	Debts []domain.Debt        `json:"debts"`
}

// LoadSeed reads a seed document from path.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seed, nil
}

// Apply registers the seed's debts and activates its plan, if any.
func (s Seed) Apply(ctx context.Context, registry *MemoryDebtRegistry, plans *MemoryPlanStore) error {
	for _, debt := range s.Debts {
		if _, err := registry.Add(ctx, debt); err != nil {
			return fmt.Errorf("register debt %q: %w", debt.Name, err)
		}
	}
	if s.Plan != nil {
		plans.Activate(ctx, *s.Plan)
	}
	return nil
}
