package commission

import (
	"github.com/shopspring/decimal"

	"cpsGrowth/domain"
)

// Config maps categories and price bands to simulated commission rates.
// Rates come only from configuration, never inferred from the item itself.
type Config struct {
	DefaultRate     float64            `koanf:"default_rate"`
	CategoryRates   map[string]float64 `koanf:"category_rates"`
	PriceRangeRates []PriceRangeRate   `koanf:"price_range_rates"`
}

// PriceRangeRate applies when min_price <= price < max_price.
type PriceRangeRate struct {
	MinPrice float64 `koanf:"min_price"`
	MaxPrice float64 `koanf:"max_price"`
	Rate     float64 `koanf:"rate"`
}

type Result struct {
	Rate   float64
	Amount float64
	// Note always carries the simulated marker: the estimate is
	// illustrative, never a contractual payout.
	Note string
}

// Calculate resolves a rate for the item (category match, then price band,
// then default, then zero) and computes the estimated payout rounded to two
// decimals. Deterministic for identical inputs.
func Calculate(it domain.Item, cfg Config) Result {
	rate := clampRate(resolveRate(it, cfg))

	if it.Price == nil {
		return Result{Rate: rate, Amount: 0, Note: domain.CommissionNoteSimulated}
	}

	amount := decimal.NewFromFloat(*it.Price).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
	if amount < 0 {
		amount = 0
	}

	return Result{Rate: rate, Amount: amount, Note: domain.CommissionNoteSimulated}
}

func resolveRate(it domain.Item, cfg Config) float64 {
	if it.Category != "" {
		if rate, ok := cfg.CategoryRates[it.Category]; ok {
			return rate
		}
	}

	if it.Price != nil {
		for _, pr := range cfg.PriceRangeRates {
			if pr.MinPrice <= *it.Price && *it.Price < pr.MaxPrice {
				return pr.Rate
			}
		}
	}

	if cfg.DefaultRate > 0 {
		return cfg.DefaultRate
	}

	return 0
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
