package recommend

// ScoringConfig weights the ranking signals. Weights default to equal
// thirds when the config omits all of them.
type ScoringConfig struct {
	WRating             float64 `koanf:"w_rating"`
	WPop                float64 `koanf:"w_pop"`
	WRecency            float64 `koanf:"w_recency"`
	RatingMin           float64 `koanf:"rating_min"`
	RatingMax           float64 `koanf:"rating_max"`
	RecencyHalfLifeDays float64 `koanf:"recency_half_life_days"`
	PopLogCap           float64 `koanf:"pop_log_cap"`
	MaxCandidates       int     `koanf:"max_candidates"`
}

const (
	defaultRatingMin           = 1.0
	defaultRatingMax           = 5.0
	defaultRecencyHalfLifeDays = 180.0
	defaultPopLogCap           = 10000.0
	defaultMaxCandidates       = 5000

	minTopN = 1
	maxTopN = 100
)

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		WRating:             1.0 / 3.0,
		WPop:                1.0 / 3.0,
		WRecency:            1.0 / 3.0,
		RatingMin:           defaultRatingMin,
		RatingMax:           defaultRatingMax,
		RecencyHalfLifeDays: defaultRecencyHalfLifeDays,
		PopLogCap:           defaultPopLogCap,
		MaxCandidates:       defaultMaxCandidates,
	}
}

// normalized fills missing fields with defaults and returns a warning for
// each defect so a bad scoring file degrades instead of aborting a request.
func (c ScoringConfig) normalized() (ScoringConfig, []string) {
	var warnings []string

	if c.WRating == 0 && c.WPop == 0 && c.WRecency == 0 {
		c.WRating, c.WPop, c.WRecency = 1.0/3.0, 1.0/3.0, 1.0/3.0
	}
	if c.WRating < 0 || c.WPop < 0 || c.WRecency < 0 {
		warnings = append(warnings, "scoring weights contain negative values, using equal thirds")
		c.WRating, c.WPop, c.WRecency = 1.0/3.0, 1.0/3.0, 1.0/3.0
	}
	if c.RatingMax <= c.RatingMin {
		if c.RatingMin != 0 || c.RatingMax != 0 {
			warnings = append(warnings, "scoring rating bounds are inverted, using defaults")
		}
		c.RatingMin, c.RatingMax = defaultRatingMin, defaultRatingMax
	}
	if c.RecencyHalfLifeDays <= 0 {
		c.RecencyHalfLifeDays = defaultRecencyHalfLifeDays
	}
	if c.PopLogCap <= 0 {
		c.PopLogCap = defaultPopLogCap
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = defaultMaxCandidates
	}

	return c, warnings
}

func clampTopN(n int) int {
	if n < minTopN {
		return minTopN
	}
	if n > maxTopN {
		return maxTopN
	}
	return n
}
