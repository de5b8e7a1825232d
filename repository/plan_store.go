package repository

import (
	"context"
	"sync"

	"debt-payoff/domain"
)

// PlanStore holds the active plan's capacity and start date.
type PlanStore interface {
	ActivePlan(ctx context.Context) (domain.PlanSettings, error)
	UpdateCapacity(ctx context.Context, capacity float64) error
}

// MemoryPlanStore is an in-memory PlanStore with at most one active plan.
type MemoryPlanStore struct {
	mu   sync.RWMutex
	plan *domain.PlanSettings
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{}
}

// Activate replaces the active plan.
func (s *MemoryPlanStore) Activate(_ context.Context, plan domain.PlanSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = &plan
}

func (s *MemoryPlanStore) ActivePlan(_ context.Context) (domain.PlanSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return domain.PlanSettings{}, domain.ErrPlanNotFound
	}
	return *s.plan, nil
}

func (s *MemoryPlanStore) UpdateCapacity(_ context.Context, capacity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan == nil {
		return domain.ErrPlanNotFound
	}
	s.plan.MonthlyCapacity = capacity
	return nil
}
