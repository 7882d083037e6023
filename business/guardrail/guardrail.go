package guardrail

import (
	"fmt"
	"strings"
	"time"

	"cpsGrowth/domain"
	"cpsGrowth/pkg/logger"
)

// Config is the ordered exclusion rule set applied before ranking.
// Loaded once per process from configs/guardrails.yaml and treated as
// read-only; per-request narrowing goes through OverridePriceRange.
type Config struct {
	MinAvgRating             float64  `koanf:"min_avg_rating"`
	MinRatingCount           int64    `koanf:"min_rating_count"`
	PriceMin                 *float64 `koanf:"price_min"`
	PriceMax                 *float64 `koanf:"price_max"`
	BannedBrands             []string `koanf:"banned_brands"`
	BannedCategories         []string `koanf:"banned_categories"`
	BannedItemIDs            []string `koanf:"banned_item_ids"`
	MaxDaysSinceLastActivity int64    `koanf:"max_days_since_last_activity"`
}

// OverridePriceRange returns a copy of the config with the price bounds
// replaced. Nil arguments keep the configured bound.
func (c Config) OverridePriceRange(priceMin, priceMax *float64) Config {
	out := c
	if priceMin != nil {
		out.PriceMin = priceMin
	}
	if priceMax != nil {
		out.PriceMax = priceMax
	}
	return out
}

// Snapshot reports the active thresholds for echoing in responses.
func (c Config) Snapshot() domain.GuardrailSnapshot {
	return domain.GuardrailSnapshot{
		MinAvgRating:             c.MinAvgRating,
		MinRatingCount:           c.MinRatingCount,
		PriceMin:                 c.PriceMin,
		PriceMax:                 c.PriceMax,
		MaxDaysSinceLastActivity: c.MaxDaysSinceLastActivity,
	}
}

// rule is one named predicate over item attributes. validate rejects
// unusable thresholds so a malformed rule degrades to always-pass instead
// of aborting the candidate pool.
type rule struct {
	name     string
	validate func(cfg Config) string
	check    func(e *Evaluator, it domain.Item) (string, bool)
}

// Rules are checked in this order and all violations are collected;
// evaluation never short-circuits so every exclusion reason is reported.
var rules = []rule{
	{
		name: "min_avg_rating",
		validate: func(cfg Config) string {
			if cfg.MinAvgRating < 0 {
				return fmt.Sprintf("min_avg_rating %.2f is negative", cfg.MinAvgRating)
			}
			return ""
		},
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.AvgRating == nil || e.cfg.MinAvgRating <= 0 {
				return "", false
			}
			if *it.AvgRating < e.cfg.MinAvgRating {
				return fmt.Sprintf("min_avg_rating: rating %.2f below minimum %.2f", *it.AvgRating, e.cfg.MinAvgRating), true
			}
			return "", false
		},
	},
	{
		name: "min_rating_count",
		validate: func(cfg Config) string {
			if cfg.MinRatingCount < 0 {
				return fmt.Sprintf("min_rating_count %d is negative", cfg.MinRatingCount)
			}
			return ""
		},
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.RatingCount < e.cfg.MinRatingCount {
				return fmt.Sprintf("min_rating_count: rating count %d below minimum %d", it.RatingCount, e.cfg.MinRatingCount), true
			}
			return "", false
		},
	},
	{
		name: "price_range",
		validate: func(cfg Config) string {
			if cfg.PriceMin != nil && cfg.PriceMax != nil && *cfg.PriceMin > *cfg.PriceMax {
				return fmt.Sprintf("price_range: min %.2f above max %.2f", *cfg.PriceMin, *cfg.PriceMax)
			}
			return ""
		},
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.Price == nil {
				return "", false
			}
			if e.cfg.PriceMin != nil && *it.Price < *e.cfg.PriceMin {
				return fmt.Sprintf("price_range: price %.2f below minimum %.2f", *it.Price, *e.cfg.PriceMin), true
			}
			if e.cfg.PriceMax != nil && *it.Price > *e.cfg.PriceMax {
				return fmt.Sprintf("price_range: price %.2f above maximum %.2f", *it.Price, *e.cfg.PriceMax), true
			}
			return "", false
		},
	},
	{
		name: "banned_brand",
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.Brand != "" && containsFold(e.cfg.BannedBrands, it.Brand) {
				return fmt.Sprintf("banned_brand: brand %q is banned", it.Brand), true
			}
			return "", false
		},
	},
	{
		name: "banned_category",
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.Category != "" && containsFold(e.cfg.BannedCategories, it.Category) {
				return fmt.Sprintf("banned_category: category %q is banned", it.Category), true
			}
			return "", false
		},
	},
	{
		name: "banned_item",
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.ItemID != "" && containsFold(e.cfg.BannedItemIDs, it.ItemID) {
				return fmt.Sprintf("banned_item: item %q is banned", it.ItemID), true
			}
			return "", false
		},
	},
	{
		name: "max_days_since_last_activity",
		validate: func(cfg Config) string {
			if cfg.MaxDaysSinceLastActivity < 0 {
				return fmt.Sprintf("max_days_since_last_activity %d is negative", cfg.MaxDaysSinceLastActivity)
			}
			return ""
		},
		check: func(e *Evaluator, it domain.Item) (string, bool) {
			if it.LastTsMs == nil || e.cfg.MaxDaysSinceLastActivity == 0 {
				return "", false
			}
			daysAgo := float64(e.now.UnixMilli()-*it.LastTsMs) / float64(24*time.Hour.Milliseconds())
			if daysAgo > float64(e.cfg.MaxDaysSinceLastActivity) {
				return fmt.Sprintf("max_days_since_last_activity: last activity %.0f days ago exceeds %d days", daysAgo, e.cfg.MaxDaysSinceLastActivity), true
			}
			return "", false
		},
	},
}

// Evaluator applies the configured rule set to candidate items. Rules with
// unusable thresholds are disabled up front and reported once via Warnings,
// not per candidate.
type Evaluator struct {
	cfg      Config
	now      time.Time
	disabled map[string]bool
	warnings []string
}

func NewEvaluator(cfg Config) *Evaluator {
	return NewEvaluatorAt(cfg, time.Now())
}

func NewEvaluatorAt(cfg Config, now time.Time) *Evaluator {
	e := &Evaluator{
		cfg:      cfg,
		now:      now,
		disabled: make(map[string]bool),
	}

	for _, r := range rules {
		if r.validate == nil {
			continue
		}
		if reason := r.validate(cfg); reason != "" {
			e.disabled[r.name] = true
			warning := fmt.Sprintf("guardrail rule %s disabled: %s", r.name, reason)
			e.warnings = append(e.warnings, warning)
			logger.Warn("Guardrail rule disabled", "rule", r.name, "reason", reason)
		}
	}

	return e
}

// Evaluate checks item against every enabled rule and collects all
// violations. An empty rule set always passes.
func (e *Evaluator) Evaluate(it domain.Item) (bool, []string) {
	violations := []string{}

	for _, r := range rules {
		if e.disabled[r.name] {
			continue
		}
		if msg, violated := r.check(e, it); violated {
			violations = append(violations, msg)
		}
	}

	return len(violations) == 0, violations
}

// Warnings reports config defects found at construction time.
func (e *Evaluator) Warnings() []string {
	return e.warnings
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
