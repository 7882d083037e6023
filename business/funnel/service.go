package funnel

import (
	"context"
	"fmt"
	"time"

	"cpsGrowth/domain"
	"cpsGrowth/pkg/logger"
	"cpsGrowth/pkg/metrics"
)

// BehaviorRepository loads raw behavior rows for one item since a cutoff.
type BehaviorRepository interface {
	EventsForItem(ctx context.Context, itemID string, since time.Time) ([]domain.BehaviorEvent, error)
}

// DiagnosisCache is an optional short-TTL cache keyed by item and window.
type DiagnosisCache interface {
	Get(ctx context.Context, itemID string, lookbackDays int) (*domain.Diagnosis, error)
	Set(ctx context.Context, itemID string, lookbackDays int, diag domain.Diagnosis) error
}

type Service struct {
	behaviorRepo BehaviorRepository
	cache        DiagnosisCache
	rules        Rules
}

func NewService(behaviorRepo BehaviorRepository, cache DiagnosisCache, rules Rules) *Service {
	return &Service{
		behaviorRepo: behaviorRepo,
		cache:        cache,
		rules:        rules,
	}
}

// DiagnoseItem aggregates the item's funnel over the lookback window and
// runs the drop-off analysis. Cache failures degrade to a fresh computation.
func (s *Service) DiagnoseItem(ctx context.Context, itemID string, lookbackDays int) (domain.Diagnosis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Diagnosis{}, fmt.Errorf("context error: %w", err)
	}

	lookbackDays = ClampLookbackDays(lookbackDays)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, itemID, lookbackDays); err != nil {
			logger.Warn("Diagnosis cache read failed", "item_id", itemID, "error", err)
		} else if cached != nil {
			metrics.DiagnoseCacheHits.Inc()
			return *cached, nil
		}
	}

	now := time.Now()
	since := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	events, err := s.behaviorRepo.EventsForItem(ctx, itemID, since)
	if err != nil {
		return domain.Diagnosis{}, fmt.Errorf("load behavior events: %w", err)
	}

	rules, _ := s.rules.normalized()
	m := Aggregate(itemID, events, rules.Stages, lookbackDays, now)
	diag := Diagnose(m, rules)

	if s.cache != nil {
		if err := s.cache.Set(ctx, itemID, lookbackDays, diag); err != nil {
			logger.Warn("Diagnosis cache write failed", "item_id", itemID, "error", err)
		}
	}

	return diag, nil
}
