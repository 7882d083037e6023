package funnel

import (
	"fmt"

	"cpsGrowth/domain"
)

// TransitionRule configures diagnosis text for one stage-to-stage transition.
// Thresholds and rates are percentages, matching the funnel_rules.yaml file.
type TransitionRule struct {
	Threshold       float64  `koanf:"threshold"`
	Issue           string   `koanf:"issue"`
	Recommendations []string `koanf:"recommendations"`
}

// Rules drives the drop-off analyzer: stage layout, per-transition text and
// the data-quality tolerance.
type Rules struct {
	Stages []domain.FunnelStage `koanf:"stages"`
	// MonotonicTolerance is the allowed fractional increase between adjacent
	// stage counts before the diagnosis gets a data-quality flag.
	MonotonicTolerance float64                   `koanf:"monotonic_tolerance"`
	RatePrecision      int                       `koanf:"rate_precision"`
	Transitions        map[string]TransitionRule `koanf:"transitions"`
}

const (
	minLookbackDays = 1
	maxLookbackDays = 90
)

func DefaultRules() Rules {
	return Rules{
		Stages: []domain.FunnelStage{
			{Name: "view", Events: []string{domain.BehaviorView}},
			{Name: "cart", Events: []string{domain.BehaviorCartAdd}},
			{Name: "fav", Events: []string{domain.BehaviorFavorite}},
			{Name: "buy", Events: []string{domain.BehaviorPurchase}},
		},
		MonotonicTolerance: 0.05,
		RatePrecision:      2,
		Transitions: map[string]TransitionRule{
			"view_to_cart": {
				Threshold: 5.0,
				Issue:     "low add-to-cart rate",
				Recommendations: []string{
					"improve the item detail page: better images and description to lift add-to-cart",
				},
			},
			"cart_to_fav": {
				Threshold: 10.0,
				Issue:     "low favorite rate",
				Recommendations: []string{
					"strengthen item appeal: adjust pricing or add promotions",
				},
			},
			"fav_to_buy": {
				Threshold: 20.0,
				Issue:     "low purchase conversion",
				Recommendations: []string{
					"push conversion: send discount reminders and simplify checkout",
				},
			},
		},
	}
}

// normalized fills missing pieces with defaults, surfacing a warning per
// defect so a broken rules file degrades instead of failing the diagnosis.
func (r Rules) normalized() (Rules, []string) {
	var warnings []string
	defaults := DefaultRules()

	if len(r.Stages) < 2 {
		if len(r.Stages) != 0 {
			warnings = append(warnings, "funnel rules define fewer than two stages, using defaults")
		}
		r.Stages = defaults.Stages
	}
	if r.MonotonicTolerance < 0 {
		warnings = append(warnings, "funnel monotonic_tolerance is negative, using default")
		r.MonotonicTolerance = defaults.MonotonicTolerance
	}
	if r.RatePrecision < 0 || r.RatePrecision > 6 {
		warnings = append(warnings, "funnel rate_precision out of range, using default")
		r.RatePrecision = defaults.RatePrecision
	}
	if r.Transitions == nil {
		r.Transitions = defaults.Transitions
	}

	return r, warnings
}

// ClampLookbackDays bounds the window to [1,90]. Negative values are
// rejected earlier by request validation.
func ClampLookbackDays(days int) int {
	if days < minLookbackDays {
		return minLookbackDays
	}
	if days > maxLookbackDays {
		return maxLookbackDays
	}
	return days
}

func transitionKey(from, to string) string {
	return fmt.Sprintf("%s_to_%s", from, to)
}
