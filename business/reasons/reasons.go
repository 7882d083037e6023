package reasons

import (
	"fmt"
	"strings"

	"cpsGrowth/domain"
)

// Config holds the cohort thresholds the templates compare against.
type Config struct {
	HighRatingThreshold float64 `koanf:"high_rating_threshold"`
	PopularityThreshold int64   `koanf:"popularity_threshold"`
	ModerateThreshold   int64   `koanf:"moderate_threshold"`
	DefaultPriceBandMin float64 `koanf:"default_price_band_min"`
	DefaultPriceBandMax float64 `koanf:"default_price_band_max"`
}

func DefaultConfig() Config {
	return Config{
		HighRatingThreshold: 4.0,
		PopularityThreshold: 50,
		ModerateThreshold:   10,
		DefaultPriceBandMin: 10,
		DefaultPriceBandMax: 100,
	}
}

// Query is the request context a reason can reference.
type Query struct {
	Keyword  string
	PriceMin *float64
	PriceMax *float64
}

// template is a predicate/formatter pair; each contributes at most one reason.
type template func(it domain.Item, q Query, cfg Config) (string, bool)

// Priority order is fixed: rating, popularity, price band, keyword, category.
var templates = []template{
	func(it domain.Item, _ Query, cfg Config) (string, bool) {
		if it.AvgRating != nil && *it.AvgRating >= cfg.HighRatingThreshold {
			return fmt.Sprintf("high rating (%.1f)", *it.AvgRating), true
		}
		return "", false
	},
	func(it domain.Item, _ Query, cfg Config) (string, bool) {
		if it.RatingCount >= cfg.PopularityThreshold {
			return fmt.Sprintf("popular (%d ratings)", it.RatingCount), true
		}
		if it.RatingCount >= cfg.ModerateThreshold {
			return fmt.Sprintf("moderately reviewed (%d ratings)", it.RatingCount), true
		}
		return "", false
	},
	func(it domain.Item, q Query, cfg Config) (string, bool) {
		if it.Price == nil {
			return "", false
		}
		lo, hi := cfg.DefaultPriceBandMin, cfg.DefaultPriceBandMax
		if q.PriceMin != nil {
			lo = *q.PriceMin
		}
		if q.PriceMax != nil {
			hi = *q.PriceMax
		}
		if lo <= *it.Price && *it.Price <= hi {
			return fmt.Sprintf("price match ($%.2f)", *it.Price), true
		}
		return "", false
	},
	func(it domain.Item, q Query, _ Config) (string, bool) {
		if q.Keyword != "" && strings.Contains(strings.ToLower(it.Title), strings.ToLower(q.Keyword)) {
			return fmt.Sprintf("title matches %q", q.Keyword), true
		}
		return "", false
	},
	func(it domain.Item, _ Query, _ Config) (string, bool) {
		if it.Category != "" {
			return fmt.Sprintf("category %s", it.Category), true
		}
		return "", false
	},
}

// Weak-condition backfills, used only when fewer than two strong templates
// fire, in the same priority order.
var backfills = []template{
	func(it domain.Item, _ Query, _ Config) (string, bool) {
		if it.AvgRating != nil {
			return fmt.Sprintf("rated %.1f", *it.AvgRating), true
		}
		return "", false
	},
	func(it domain.Item, _ Query, _ Config) (string, bool) {
		if it.RatingCount > 0 {
			return fmt.Sprintf("%d ratings on record", it.RatingCount), true
		}
		return "", false
	},
	func(it domain.Item, _ Query, _ Config) (string, bool) {
		if it.Price != nil {
			return fmt.Sprintf("price $%.2f", *it.Price), true
		}
		return "", false
	},
}

// Generate returns 2-3 justification strings in priority order. When both
// rating and rating count are missing the 2-3 contract is deliberately
// relaxed to a single generic reason rather than an empty list.
func Generate(it domain.Item, q Query, cfg Config) []string {
	if it.AvgRating == nil && it.RatingCount == 0 {
		return []string{"item information on file"}
	}

	out := make([]string, 0, 3)
	for _, tpl := range templates {
		if len(out) == 3 {
			break
		}
		if reason, ok := tpl(it, q, cfg); ok {
			out = append(out, reason)
		}
	}

	for _, tpl := range backfills {
		if len(out) >= 2 {
			break
		}
		if reason, ok := tpl(it, q, cfg); ok && !contains(out, reason) {
			out = append(out, reason)
		}
	}

	if len(out) < 2 {
		out = append(out, "item available")
	}

	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
