package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cpsGrowth/business/commission"
	"cpsGrowth/business/guardrail"
	"cpsGrowth/business/reasons"
	"cpsGrowth/domain"
)

// ItemRepository loads candidate rows from storage. The engine itself never
// touches storage; Rank works on already-materialized rows.
type ItemRepository interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Item, error)
}

type Service struct {
	itemRepo   ItemRepository
	guardrails guardrail.Config
	commission commission.Config
	reasons    reasons.Config
	scoring    ScoringConfig
}

func NewService(
	itemRepo ItemRepository,
	guardrails guardrail.Config,
	commissionCfg commission.Config,
	reasonsCfg reasons.Config,
	scoring ScoringConfig,
) *Service {
	return &Service{
		itemRepo:   itemRepo,
		guardrails: guardrails,
		commission: commissionCfg,
		reasons:    reasonsCfg,
		scoring:    scoring,
	}
}

// Params is one recommendation request. TopN outside [1,100] is clamped;
// negative values are rejected upstream by request validation.
type Params struct {
	Query    string
	Category string
	PriceMin *float64
	PriceMax *float64
	TopN     int
	// Debug includes guardrail failures with their violations in the response.
	Debug bool
}

// Recommend fetches candidates and ranks them.
func (s *Service) Recommend(ctx context.Context, p Params) (domain.RecommendationResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResponse{}, fmt.Errorf("context error: %w", err)
	}

	scoring, _ := s.scoring.normalized()

	candidates, err := s.itemRepo.Search(ctx, p.Query, scoring.MaxCandidates)
	if err != nil {
		return domain.RecommendationResponse{}, fmt.Errorf("load candidates: %w", err)
	}

	return s.Rank(candidates, p, time.Now()), nil
}

// Rank filters, scores, sorts and truncates the candidate pool. A single
// synchronous pass: deterministic for identical inputs, no hidden
// randomness, and an empty pool yields an empty response rather than an
// error.
func (s *Service) Rank(candidates []domain.Item, p Params, now time.Time) domain.RecommendationResponse {
	scoring, warnings := s.scoring.normalized()
	topN := clampTopN(p.TopN)

	// Coarse filter runs before guardrails so the candidates count reflects
	// what was actually considered.
	pool := coarseFilter(candidates, p)

	guardCfg := s.guardrails.OverridePriceRange(p.PriceMin, p.PriceMax)
	evaluator := guardrail.NewEvaluatorAt(guardCfg, now)
	warnings = append(warnings, evaluator.Warnings()...)

	query := reasons.Query{Keyword: p.Query, PriceMin: p.PriceMin, PriceMax: p.PriceMax}

	passed := make([]domain.ScoredItem, 0, len(pool))
	var excluded []domain.ScoredItem

	for _, it := range pool {
		scored := domain.ScoredItem{
			Item:  it,
			Score: score(it, scoring, now),
		}

		ok, violations := evaluator.Evaluate(it)
		if !ok {
			scored.RiskFlags = violations
			if p.Debug {
				excluded = append(excluded, scored)
			}
			continue
		}

		scored.RiskFlags = []string{}
		passed = append(passed, scored)
	}

	sortScored(passed)
	sortScored(excluded)

	top := passed
	if len(top) > topN {
		top = top[:topN]
	}

	for i := range top {
		top[i].Reasons = reasons.Generate(top[i].Item, query, s.reasons)
		c := commission.Calculate(top[i].Item, s.commission)
		top[i].CommissionRate = c.Rate
		top[i].EstimatedCommission = c.Amount
		top[i].CommissionNote = c.Note
	}

	return domain.RecommendationResponse{
		Query:      p.Query,
		Category:   p.Category,
		Candidates: len(pool),
		Passed:     len(passed),
		Returned:   len(top),
		Guardrails: guardCfg.Snapshot(),
		Items:      top,
		Excluded:   excluded,
		Warnings:   warnings,
	}
}

func coarseFilter(candidates []domain.Item, p Params) []domain.Item {
	wantCategory := normCategory(p.Category)

	pool := make([]domain.Item, 0, len(candidates))
	for _, it := range candidates {
		if wantCategory != "" && normCategory(it.Category) != wantCategory {
			continue
		}
		if p.PriceMin != nil && (it.Price == nil || *it.Price < *p.PriceMin) {
			continue
		}
		if p.PriceMax != nil && (it.Price == nil || *it.Price > *p.PriceMax) {
			continue
		}
		pool = append(pool, it)
	}

	return pool
}

// Ties break by rating count, then item ID, so rankings are reproducible.
func sortScored(items []domain.ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].RatingCount != items[j].RatingCount {
			return items[i].RatingCount > items[j].RatingCount
		}
		return items[i].ItemID < items[j].ItemID
	})
}

// normCategory lets "All Beauty" and "All_Beauty" match.
func normCategory(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
