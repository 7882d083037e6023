package funnel

import (
	"fmt"
	"math"

	"cpsGrowth/domain"
)

// Diagnose computes adjacent-stage conversion rates, locates the weakest
// transition and selects recommendation text from the configured mapping.
// Rates are percentages rounded to the configured precision.
func Diagnose(metrics domain.FunnelMetrics, rules Rules) domain.Diagnosis {
	rules, warnings := rules.normalized()

	diag := domain.Diagnosis{
		Metrics:         metrics,
		Transitions:     []domain.Transition{},
		DropOffs:        []domain.DropOff{},
		Recommendations: []string{},
		Warnings:        warnings,
	}

	stages := metrics.Stages
	if len(stages) < 2 {
		diag.Conclusion = "insufficient data: funnel has fewer than two stages"
		return diag
	}

	var weakest *domain.Transition
	anyTraffic := false

	for i := 0; i+1 < len(stages); i++ {
		prev, next := stages[i], stages[i+1]

		// Guarded division: a dried-up stage yields 0, never a fault.
		rate := 0.0
		if prev.Actors > 0 {
			rate = roundTo(float64(next.Actors)/float64(prev.Actors)*100, rules.RatePrecision)
		}

		tr := domain.Transition{From: prev.Stage, To: next.Stage, Rate: rate}
		diag.Transitions = append(diag.Transitions, tr)

		if prev.Actors > 0 {
			anyTraffic = true
			if weakest == nil || tr.Rate < weakest.Rate {
				cp := tr
				weakest = &cp
			}

			if rule, ok := rules.Transitions[transitionKey(prev.Stage, next.Stage)]; ok && tr.Rate < rule.Threshold {
				diag.DropOffs = append(diag.DropOffs, domain.DropOff{
					Transition: transitionKey(prev.Stage, next.Stage),
					Rate:       tr.Rate,
					Threshold:  rule.Threshold,
					Issue:      rule.Issue,
				})
			}
		}

		// Counts rising across stages beyond tolerance point at an upstream
		// data defect; flag it instead of presenting a >100% rate as real.
		if float64(next.Actors) > float64(prev.Actors)*(1+rules.MonotonicTolerance) {
			diag.DataQualityFlags = append(diag.DataQualityFlags, fmt.Sprintf(
				"stage %s count %d exceeds stage %s count %d beyond tolerance",
				next.Stage, next.Actors, prev.Stage, prev.Actors,
			))
		}
	}

	if !anyTraffic {
		diag.Conclusion = "insufficient data: no funnel activity in the lookback window"
		diag.Recommendations = append(diag.Recommendations,
			"increase exposure: promote the item and invest in content marketing")
		return diag
	}

	diag.WeakestTransition = weakest
	diag.Conclusion = fmt.Sprintf("weakest transition is %s->%s at %.*f%%",
		weakest.From, weakest.To, rules.RatePrecision, weakest.Rate)

	if rule, ok := rules.Transitions[transitionKey(weakest.From, weakest.To)]; ok {
		diag.Recommendations = append(diag.Recommendations, rule.Recommendations...)
	}
	for _, d := range diag.DropOffs {
		if d.Transition == transitionKey(weakest.From, weakest.To) {
			continue
		}
		if rule, ok := rules.Transitions[d.Transition]; ok {
			diag.Recommendations = append(diag.Recommendations, rule.Recommendations...)
		}
	}
	if len(diag.Recommendations) == 0 {
		diag.Recommendations = append(diag.Recommendations, "funnel looks healthy, keep the current setup")
	}

	return diag
}

func roundTo(v float64, precision int) float64 {
	factor := math.Pow10(precision)
	return math.Round(v*factor) / factor
}
