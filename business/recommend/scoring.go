package recommend

import (
	"math"
	"time"

	"cpsGrowth/domain"
)

// score = w_rating·rating_norm + w_pop·pop_norm + w_recency·recency_norm
func score(it domain.Item, cfg ScoringConfig, now time.Time) float64 {
	s := cfg.WRating*normalizeRating(it.AvgRating, cfg) +
		cfg.WPop*normalizePopularity(it.RatingCount, cfg.PopLogCap) +
		cfg.WRecency*recencyScore(it.LastTsMs, cfg.RecencyHalfLifeDays, now)

	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return 0
	}

	return math.Round(s*10000) / 10000
}

func normalizeRating(rating *float64, cfg ScoringConfig) float64 {
	if rating == nil {
		return 0
	}
	norm := (*rating - cfg.RatingMin) / (cfg.RatingMax - cfg.RatingMin)
	return clamp01(norm)
}

// log1p scale so the popularity signal saturates at the configured cap.
func normalizePopularity(count int64, logCap float64) float64 {
	if count <= 0 {
		return 0
	}
	return clamp01(math.Log1p(float64(count)) / math.Log1p(logCap))
}

// recencyScore halves for every half-life elapsed since the last activity.
func recencyScore(lastTsMs *int64, halfLifeDays float64, now time.Time) float64 {
	if lastTsMs == nil {
		return 0
	}
	ageSeconds := float64(now.UnixMilli()-*lastTsMs) / 1000
	halfLifeSeconds := halfLifeDays * 24 * 60 * 60
	return clamp01(math.Exp2(-ageSeconds / halfLifeSeconds))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
