package reasons

import (
	"strings"
	"testing"

	"cpsGrowth/domain"
)

func fptr(v float64) *float64 { return &v }

func TestGenerateRichItemGetsThreeReasons(t *testing.T) {
	it := domain.Item{
		ItemID:      "B001",
		Title:       "Hydrating Face Serum",
		AvgRating:   fptr(4.6),
		RatingCount: 120,
		Price:       fptr(25),
		Category:    "All_Beauty",
	}

	out := Generate(it, Query{Keyword: "serum"}, DefaultConfig())
	if len(out) != 3 {
		t.Fatalf("expected 3 reasons, got %d: %v", len(out), out)
	}

	// Priority order: rating first, then popularity, then price band.
	if !strings.HasPrefix(out[0], "high rating") {
		t.Errorf("expected rating reason first, got %q", out[0])
	}
	if !strings.HasPrefix(out[1], "popular") {
		t.Errorf("expected popularity reason second, got %q", out[1])
	}
}

func TestGenerateCountAlwaysTwoOrThree(t *testing.T) {
	items := []domain.Item{
		{ItemID: "a", AvgRating: fptr(4.8), RatingCount: 500, Price: fptr(15), Category: "X", Title: "thing"},
		{ItemID: "b", AvgRating: fptr(2.0), RatingCount: 3},
		{ItemID: "c", RatingCount: 12},
		{ItemID: "d", AvgRating: fptr(3.0), RatingCount: 0, Price: fptr(999)},
	}

	for _, it := range items {
		out := Generate(it, Query{}, DefaultConfig())
		if len(out) < 2 || len(out) > 3 {
			t.Errorf("item %s: expected 2-3 reasons, got %d: %v", it.ItemID, len(out), out)
		}
	}
}

func TestGenerateBareItemGetsSingleGenericReason(t *testing.T) {
	out := Generate(domain.Item{ItemID: "B001"}, Query{}, DefaultConfig())
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 generic reason, got %v", out)
	}
	if out[0] != "item information on file" {
		t.Fatalf("unexpected generic reason %q", out[0])
	}
}

func TestGenerateModerateReviewTier(t *testing.T) {
	it := domain.Item{ItemID: "B001", AvgRating: fptr(3.0), RatingCount: 15}

	out := Generate(it, Query{}, DefaultConfig())
	found := false
	for _, r := range out {
		if strings.HasPrefix(r, "moderately reviewed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected moderate tier reason, got %v", out)
	}
}

func TestGeneratePriceBandUsesQueryBounds(t *testing.T) {
	// 150 is outside the default band but inside the requested one.
	it := domain.Item{ItemID: "B001", AvgRating: fptr(4.5), RatingCount: 80, Price: fptr(150)}

	withBounds := Generate(it, Query{PriceMin: fptr(100), PriceMax: fptr(200)}, DefaultConfig())
	if !containsPrefix(withBounds, "price match") {
		t.Errorf("expected price match with query bounds, got %v", withBounds)
	}

	withoutBounds := Generate(it, Query{}, DefaultConfig())
	if containsPrefix(withoutBounds, "price match") {
		t.Errorf("price outside default band must not match, got %v", withoutBounds)
	}
}

func TestGenerateBackfillWhenWeak(t *testing.T) {
	// Low rating, few reviews, no price, no category: strong templates all
	// miss, backfills must still reach two reasons.
	it := domain.Item{ItemID: "B001", AvgRating: fptr(2.1), RatingCount: 3}

	out := Generate(it, Query{}, DefaultConfig())
	if len(out) != 2 {
		t.Fatalf("expected 2 backfilled reasons, got %v", out)
	}
	if !strings.HasPrefix(out[0], "rated") {
		t.Errorf("expected rated backfill first, got %q", out[0])
	}
}

func containsPrefix(list []string, prefix string) bool {
	for _, v := range list {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}
