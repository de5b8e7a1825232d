package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"debt-payoff/domain"
	"debt-payoff/repository"
)

const compareConcurrency = 4

// PayoffService runs projections over the debt registry and the active plan.
type PayoffService struct {
	registry repository.DebtRegistry
	plans    repository.PlanStore
	cache    repository.CacheRepository
	logger   *logrus.Logger
}

// NewPayoffService creates a new PayoffService with the given collaborators.
func NewPayoffService(
	registry repository.DebtRegistry,
	plans repository.PlanStore,
	cache repository.CacheRepository,
	logger *logrus.Logger,
) *PayoffService {
	return &PayoffService{
		registry: registry,
		plans:    plans,
		cache:    cache,
		logger:   logger,
	}
}

// PayoffPlan projects the active debts with the active plan's capacity and start date.
func (s *PayoffService) PayoffPlan(ctx context.Context) (domain.PayoffPlan, error) {
	plan, err := s.plans.ActivePlan(ctx)
	if err != nil {
		return domain.PayoffPlan{}, fmt.Errorf("load active plan: %w", err)
	}
	return s.project(ctx, plan)
}

// Recalculate stores a new monthly capacity, when one is given, and projects again.
func (s *PayoffService) Recalculate(ctx context.Context, capacity *float64) (domain.PayoffPlan, error) {
	if capacity != nil {
		if *capacity < 0 || !isFinite(*capacity) {
			return domain.PayoffPlan{}, &domain.InvalidCapacityError{Capacity: *capacity}
		}
		if err := s.plans.UpdateCapacity(ctx, *capacity); err != nil {
			return domain.PayoffPlan{}, fmt.Errorf("update monthly capacity: %w", err)
		}
		s.logger.WithField("monthly_capacity", *capacity).Info("Monthly capacity updated")
	}
	return s.PayoffPlan(ctx)
}

// DebtSummary returns the totals of the active debts. A missing plan counts as
// zero capacity.
func (s *PayoffService) DebtSummary(ctx context.Context) (domain.DebtSummary, error) {
	debts, err := s.registry.ListActive(ctx)
	if err != nil {
		return domain.DebtSummary{}, fmt.Errorf("list active debts: %w", err)
	}

	var capacity float64
	plan, err := s.plans.ActivePlan(ctx)
	switch {
	case err == nil:
		capacity = plan.MonthlyCapacity
	case !errors.Is(err, domain.ErrPlanNotFound):
		return domain.DebtSummary{}, fmt.Errorf("load active plan: %w", err)
	}

	var totalDebt, totalMinimums float64
	for _, d := range debts {
		totalDebt += d.Balance
		totalMinimums += d.MinimumPayment
	}

	return domain.DebtSummary{
		TotalDebt:       money(totalDebt),
		TotalMinimums:   money(totalMinimums),
		MonthlyCapacity: money(capacity),
		ExtraPayment:    money(capacity - totalMinimums),
		ActiveDebts:     len(debts),
	}, nil
}

// CompareCapacities projects the active debts once per capacity, concurrently.
// Results keep the order of capacities; a scenario that cannot be simulated
// carries its error instead of a summary.
func (s *PayoffService) CompareCapacities(ctx context.Context, capacities []float64) ([]domain.CapacityScenario, error) {
	if len(capacities) > MaxCompareScenarios {
		return nil, fmt.Errorf("too many scenarios: %d, maximum is %d", len(capacities), MaxCompareScenarios)
	}

	plan, err := s.plans.ActivePlan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active plan: %w", err)
	}
	debts, err := s.registry.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active debts: %w", err)
	}

	scenarios := make([]domain.CapacityScenario, len(capacities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)

	for i, capacity := range capacities {
		i, capacity := i, capacity
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scenario := domain.CapacityScenario{MonthlyCapacity: money(capacity)}
			result, err := Simulate(debts, capacity, plan.StartDate)
			if err != nil {
				scenario.Error = err.Error()
			} else {
				scenario.Summary = &result.Summary
			}
			scenarios[i] = scenario
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"scenarios": len(scenarios),
		"debts":     len(debts),
	}).Debug("Capacity scenarios computed")
	return scenarios, nil
}

func (s *PayoffService) project(ctx context.Context, plan domain.PlanSettings) (domain.PayoffPlan, error) {
	debts, err := s.registry.ListActive(ctx)
	if err != nil {
		return domain.PayoffPlan{}, fmt.Errorf("list active debts: %w", err)
	}
	if len(debts) == 0 {
		return domain.PayoffPlan{}, &domain.NoActiveDebtsError{}
	}

	log := s.logger.WithFields(logrus.Fields{
		"debts":            len(debts),
		"monthly_capacity": plan.MonthlyCapacity,
		"start_date":       plan.StartDate.String(),
	})

	key, err := planCacheKey(debts, plan)
	if err != nil {
		return domain.PayoffPlan{}, fmt.Errorf("build cache key: %w", err)
	}
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.PayoffPlan
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			log.Debug("Payoff plan served from cache")
			return result, nil
		}
		log.Warn("Discarding unreadable cached payoff plan")
	}

	result, err := Simulate(debts, plan.MonthlyCapacity, plan.StartDate)
	if err != nil {
		log.WithError(err).Warn("Payoff simulation failed")
		return domain.PayoffPlan{}, err
	}

	// Guardar en caché (no crítico si falla)
	if encoded, err := json.Marshal(result); err != nil {
		log.WithError(err).Error("Failed to encode payoff plan for cache")
	} else if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
		log.WithError(err).Warn("Failed to cache payoff plan")
	}

	log.WithFields(logrus.Fields{
		"months":        len(result.Timeline),
		"debt_paid_off": result.Summary.DebtPaidOff,
		"is_underwater": result.Summary.IsUnderwater,
	}).Info("Payoff plan computed")
	return result, nil
}

// planCacheKey digests everything a projection depends on.
func planCacheKey(debts []domain.Debt, plan domain.PlanSettings) (string, error) {
	payload, err := json.Marshal(struct {
		Debts []domain.Debt       `json:"debts"`
		Plan  domain.PlanSettings `json:"plan"`
	}{debts, plan})
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}
