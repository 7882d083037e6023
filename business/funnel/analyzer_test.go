package funnel

import (
	"strings"
	"testing"

	"cpsGrowth/domain"
)

func metricsOf(counts ...int64) domain.FunnelMetrics {
	names := []string{"view", "cart", "fav", "buy"}
	stages := make([]domain.StageCount, len(counts))
	for i, c := range counts {
		stages[i] = domain.StageCount{Stage: names[i], Actors: c}
	}
	return domain.FunnelMetrics{ItemID: "item-1", LookbackDays: 7, Stages: stages}
}

func TestDiagnoseFindsWeakestTransition(t *testing.T) {
	// view 1000 -> cart 300 (30%), cart -> fav 150 (50%), fav -> buy 30 (20%)
	diag := Diagnose(metricsOf(1000, 300, 150, 30), DefaultRules())

	if diag.WeakestTransition == nil {
		t.Fatal("expected a weakest transition")
	}
	if diag.WeakestTransition.From != "fav" || diag.WeakestTransition.To != "buy" {
		t.Fatalf("expected fav->buy, got %s->%s", diag.WeakestTransition.From, diag.WeakestTransition.To)
	}
	if diag.WeakestTransition.Rate != 20.00 {
		t.Fatalf("expected rate 20.00, got %v", diag.WeakestTransition.Rate)
	}
	if diag.Conclusion != "weakest transition is fav->buy at 20.00%" {
		t.Fatalf("unexpected conclusion %q", diag.Conclusion)
	}
	if len(diag.Recommendations) == 0 {
		t.Fatal("expected recommendations for the weakest transition")
	}
}

func TestDiagnoseRatesRounded(t *testing.T) {
	// 1/3 -> 33.33 at the default precision of 2.
	diag := Diagnose(metricsOf(3, 1, 0, 0), DefaultRules())

	if diag.Transitions[0].Rate != 33.33 {
		t.Fatalf("expected 33.33, got %v", diag.Transitions[0].Rate)
	}
}

func TestDiagnoseZeroTrafficIsInsufficientData(t *testing.T) {
	diag := Diagnose(metricsOf(0, 0, 0, 0), DefaultRules())

	if diag.WeakestTransition != nil {
		t.Fatal("no traffic must not pick a weakest transition")
	}
	if !strings.HasPrefix(diag.Conclusion, "insufficient data") {
		t.Fatalf("unexpected conclusion %q", diag.Conclusion)
	}
	if len(diag.Recommendations) == 0 {
		t.Fatal("expected an exposure recommendation")
	}
	for _, tr := range diag.Transitions {
		if tr.Rate != 0 {
			t.Fatalf("zero traffic must yield zero rates, got %+v", tr)
		}
	}
}

func TestDiagnoseZeroPrevStageYieldsZeroRateNotPanic(t *testing.T) {
	// Traffic dries up after view: cart/fav/buy all zero.
	diag := Diagnose(metricsOf(100, 0, 0, 0), DefaultRules())

	if diag.WeakestTransition == nil {
		t.Fatal("view had traffic, expected a weakest transition")
	}
	if diag.WeakestTransition.From != "view" || diag.WeakestTransition.Rate != 0 {
		t.Fatalf("expected view->cart at 0, got %+v", diag.WeakestTransition)
	}
}

func TestDiagnoseDropOffsBelowThreshold(t *testing.T) {
	// view->cart 3% (<5), cart->fav 33.33% (ok), fav->buy 10% (<20)
	diag := Diagnose(metricsOf(1000, 30, 10, 1), DefaultRules())

	if len(diag.DropOffs) != 2 {
		t.Fatalf("expected 2 drop-offs, got %+v", diag.DropOffs)
	}
	if diag.DropOffs[0].Transition != "view_to_cart" || diag.DropOffs[1].Transition != "fav_to_buy" {
		t.Fatalf("unexpected drop-off order: %+v", diag.DropOffs)
	}

	// Weakest is view->cart; its advice leads, the other drop-off follows.
	if diag.WeakestTransition.From != "view" {
		t.Fatalf("expected view->cart weakest, got %+v", diag.WeakestTransition)
	}
	if len(diag.Recommendations) != 2 {
		t.Fatalf("expected advice for both drop-offs, got %v", diag.Recommendations)
	}
}

func TestDiagnoseMonotonicViolationFlagged(t *testing.T) {
	// cart exceeds view beyond the 5% tolerance.
	diag := Diagnose(metricsOf(100, 120, 50, 10), DefaultRules())

	if len(diag.DataQualityFlags) != 1 {
		t.Fatalf("expected 1 data quality flag, got %v", diag.DataQualityFlags)
	}
	if !strings.Contains(diag.DataQualityFlags[0], "cart") {
		t.Fatalf("flag should name the offending stage: %q", diag.DataQualityFlags[0])
	}
}

func TestDiagnoseWithinToleranceNotFlagged(t *testing.T) {
	// 104 <= 100 * 1.05: inside tolerance.
	diag := Diagnose(metricsOf(100, 104, 50, 10), DefaultRules())

	if len(diag.DataQualityFlags) != 0 {
		t.Fatalf("expected no flags, got %v", diag.DataQualityFlags)
	}
}

func TestDiagnoseHealthyFunnelFallbackAdvice(t *testing.T) {
	rules := DefaultRules()
	rules.Transitions = map[string]TransitionRule{}

	diag := Diagnose(metricsOf(1000, 500, 400, 300), rules)

	if len(diag.DropOffs) != 0 {
		t.Fatalf("no thresholds configured, expected no drop-offs: %+v", diag.DropOffs)
	}
	if len(diag.Recommendations) != 1 || !strings.Contains(diag.Recommendations[0], "healthy") {
		t.Fatalf("expected the healthy fallback, got %v", diag.Recommendations)
	}
}

func TestDiagnoseFewerThanTwoStages(t *testing.T) {
	m := domain.FunnelMetrics{
		ItemID: "item-1",
		Stages: []domain.StageCount{{Stage: "view", Actors: 10}},
	}
	rules := DefaultRules()

	diag := Diagnose(m, rules)
	if !strings.HasPrefix(diag.Conclusion, "insufficient data") {
		t.Fatalf("unexpected conclusion %q", diag.Conclusion)
	}
	if len(diag.Transitions) != 0 {
		t.Fatalf("expected no transitions, got %+v", diag.Transitions)
	}
}

func TestClampLookbackDays(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {7, 7}, {90, 90}, {400, 90},
	}
	for _, tc := range tests {
		if got := ClampLookbackDays(tc.in); got != tc.want {
			t.Errorf("ClampLookbackDays(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRulesNormalizedDefaults(t *testing.T) {
	rules, warnings := Rules{}.normalized()
	if len(warnings) != 0 {
		t.Fatalf("empty rules should default silently, got %v", warnings)
	}
	if len(rules.Stages) != 4 || rules.RatePrecision != 2 {
		t.Fatalf("unexpected defaults: %+v", rules)
	}

	_, warnings = Rules{Stages: []domain.FunnelStage{{Name: "only"}}}.normalized()
	if len(warnings) != 1 {
		t.Fatalf("single stage must warn, got %v", warnings)
	}
}
