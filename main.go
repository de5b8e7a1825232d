package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"debt-payoff/config"
	"debt-payoff/domain"
	"debt-payoff/repository"
	"debt-payoff/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}
	logger := cfg.NewLogger()

	seedFile := flag.String("seed", cfg.SeedFile, "JSON file with the plan and the debts")
	capacity := flag.String("capacity", "", "monthly payment capacity, replaces the plan's")
	start := flag.String("start", "", "plan start date (YYYY-MM-DD)")
	compare := flag.String("compare", "", "comma separated capacities to compare")
	summaryOnly := flag.Bool("summary", false, "print the debt summary only")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := repository.LoadSeed(*seedFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load seed")
	}
	if seed.Plan == nil {
		seed.Plan = &domain.PlanSettings{}
	}
	if *start != "" {
		date, err := domain.ParseDate(*start)
		if err != nil {
			logger.WithError(err).Fatalf("Invalid start date %q", *start)
		}
		seed.Plan.StartDate = date
	}
	if seed.Plan.StartDate.IsZero() {
		seed.Plan.StartDate = domain.NewDate(time.Now())
	}

	registry := repository.NewMemoryDebtRegistry()
	plans := repository.NewMemoryPlanStore()
	if err := seed.Apply(ctx, registry, plans); err != nil {
		logger.WithError(err).Fatal("Failed to apply seed")
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Redis unavailable, using in-memory cache")
		} else {
			cache = redisCache
		}
	}

	payoffService := service.NewPayoffService(registry, plans, cache, logger)

	var result any
	switch {
	case *summaryOnly:
		result, err = payoffService.DebtSummary(ctx)
	case *compare != "":
		var capacities []float64
		capacities, err = parseCapacities(*compare)
		if err == nil {
			result, err = payoffService.CompareCapacities(ctx, capacities)
		}
	default:
		var override *float64
		if *capacity != "" {
			v, perr := strconv.ParseFloat(*capacity, 64)
			if perr != nil {
				logger.WithError(perr).Fatalf("Invalid capacity %q", *capacity)
			}
			override = &v
		}
		result, err = payoffService.Recalculate(ctx, override)
	}
	if err != nil {
		logger.WithError(err).Error("Payoff projection failed")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.WithError(err).Error("Failed to write result")
		os.Exit(1)
	}
}

func parseCapacities(list string) ([]float64, error) {
	var capacities []float64
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: %w", part, err)
		}
		capacities = append(capacities, v)
	}
	return capacities, nil
}
