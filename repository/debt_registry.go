package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"debt-payoff/domain"
)

var (
	ErrDuplicateDebt = errors.New("debt already registered")
	ErrDebtNotFound  = errors.New("debt not found")
)

// DebtRegistry supplies the debts a projection runs on.
type DebtRegistry interface {
	ListActive(ctx context.Context) ([]domain.Debt, error)
}

type registeredDebt struct {
	debt   domain.Debt
	active bool
}

// MemoryDebtRegistry is an in-memory implementation of DebtRegistry.
// Registration order is preserved; it breaks ties between equal priority ranks.
type MemoryDebtRegistry struct {
	mu    sync.RWMutex
	debts []registeredDebt
}

// NewMemoryDebtRegistry creates an empty registry.
func NewMemoryDebtRegistry() *MemoryDebtRegistry {
	return &MemoryDebtRegistry{
		debts: []registeredDebt{},
	}
}

// Add registers an active debt and returns its id. Debts without an id get a
// random UUID.
func (r *MemoryDebtRegistry) Add(_ context.Context, debt domain.Debt) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}
	for _, d := range r.debts {
		if d.debt.ID == debt.ID {
			return "", fmt.Errorf("%w: %s", ErrDuplicateDebt, debt.ID)
		}
	}
	if debt.PriorityRank != nil {
		debt.PriorityRank = domain.Ranked(*debt.PriorityRank)
	}
	r.debts = append(r.debts, registeredDebt{debt: debt, active: true})
	return debt.ID, nil
}

// Deactivate removes a debt from future projections without forgetting it.
func (r *MemoryDebtRegistry) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.debts {
		if r.debts[i].debt.ID == id {
			r.debts[i].active = false
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrDebtNotFound, id)
}

// ListActive returns copies of the active debts in registration order.
func (r *MemoryDebtRegistry) ListActive(_ context.Context) ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Debt, 0, len(r.debts))
	for _, d := range r.debts {
		if !d.active {
			continue
		}
		debt := d.debt
		if debt.PriorityRank != nil {
			debt.PriorityRank = domain.Ranked(*debt.PriorityRank)
		}
		out = append(out, debt)
	}
	return out, nil
}
