package recommend

import (
	"math"
	"testing"
	"time"

	"cpsGrowth/domain"
)

func fptr(v float64) *float64 { return &v }

var scoreNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestScoreBoundedAndRounded(t *testing.T) {
	cfg := DefaultScoringConfig()
	ts := scoreNow.UnixMilli()

	it := domain.Item{
		ItemID:      "B001",
		AvgRating:   fptr(4.2),
		RatingCount: 350,
		LastTsMs:    &ts,
	}

	s := score(it, cfg, scoreNow)
	if s < 0 || s > 1 {
		t.Fatalf("score out of [0,1]: %v", s)
	}
	if math.Round(s*10000)/10000 != s {
		t.Fatalf("score not rounded to 4 decimals: %v", s)
	}
}

func TestScoreMissingSignalsContributeZero(t *testing.T) {
	cfg := DefaultScoringConfig()

	if s := score(domain.Item{ItemID: "B001"}, cfg, scoreNow); s != 0 {
		t.Fatalf("item with no signals must score 0, got %v", s)
	}
}

func TestScoreMonotonicInRating(t *testing.T) {
	cfg := DefaultScoringConfig()

	low := score(domain.Item{AvgRating: fptr(2.0), RatingCount: 100}, cfg, scoreNow)
	high := score(domain.Item{AvgRating: fptr(4.5), RatingCount: 100}, cfg, scoreNow)
	if high <= low {
		t.Fatalf("higher rating must score higher: %v vs %v", high, low)
	}
}

func TestRecencyHalvesPerHalfLife(t *testing.T) {
	fresh := scoreNow.UnixMilli()
	oneHalfLife := scoreNow.AddDate(0, 0, -180).UnixMilli()

	if got := recencyScore(&fresh, 180, scoreNow); got != 1 {
		t.Errorf("activity right now must score 1, got %v", got)
	}
	got := recencyScore(&oneHalfLife, 180, scoreNow)
	if math.Abs(got-0.5) > 0.01 {
		t.Errorf("one half-life ago must score ~0.5, got %v", got)
	}
	if recencyScore(nil, 180, scoreNow) != 0 {
		t.Error("missing timestamp must score 0")
	}
}

func TestPopularitySaturatesAtCap(t *testing.T) {
	if got := normalizePopularity(10000, 10000); got != 1 {
		t.Errorf("count at cap must score 1, got %v", got)
	}
	if got := normalizePopularity(50000, 10000); got != 1 {
		t.Errorf("count above cap must clamp to 1, got %v", got)
	}
	if got := normalizePopularity(0, 10000); got != 0 {
		t.Errorf("zero count must score 0, got %v", got)
	}
}

func TestNormalizeRatingClamps(t *testing.T) {
	cfg := DefaultScoringConfig()

	if got := normalizeRating(fptr(5), cfg); got != 1 {
		t.Errorf("rating 5 must normalize to 1, got %v", got)
	}
	if got := normalizeRating(fptr(1), cfg); got != 0 {
		t.Errorf("rating 1 must normalize to 0, got %v", got)
	}
	if got := normalizeRating(fptr(7), cfg); got != 1 {
		t.Errorf("out-of-scale rating must clamp, got %v", got)
	}
}

func TestClampTopN(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {10, 10}, {100, 100}, {250, 100},
	}
	for _, tc := range tests {
		if got := clampTopN(tc.in); got != tc.want {
			t.Errorf("clampTopN(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestScoringConfigNormalized(t *testing.T) {
	cfg, warnings := ScoringConfig{}.normalized()
	if len(warnings) != 0 {
		t.Fatalf("zero config should default silently, got %v", warnings)
	}
	if sum := cfg.WRating + cfg.WPop + cfg.WRecency; math.Abs(sum-1) > 1e-9 {
		t.Errorf("default weights must sum to 1, got %v", sum)
	}
	if cfg.RatingMin != 1 || cfg.RatingMax != 5 {
		t.Errorf("expected default rating bounds, got [%v,%v]", cfg.RatingMin, cfg.RatingMax)
	}

	cfg, warnings = ScoringConfig{WRating: -1, WPop: 2, WRecency: 0}.normalized()
	if len(warnings) == 0 {
		t.Fatal("negative weight must warn")
	}
	if cfg.WRating != 1.0/3.0 {
		t.Errorf("negative weights must reset to thirds, got %v", cfg.WRating)
	}
}
