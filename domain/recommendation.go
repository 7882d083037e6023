package domain

// CommissionNoteSimulated marks every commission figure as illustrative.
// The estimate is not a contractual payout and must always carry this label.
const CommissionNoteSimulated = "simulated"

// ScoredItem is one ranked entry in a recommendation response.
type ScoredItem struct {
	Item
	Score               float64  `json:"score"`
	Reasons             []string `json:"reasons"`
	RiskFlags           []string `json:"risk_flags"`
	CommissionRate      float64  `json:"commission_rate"`
	EstimatedCommission float64  `json:"estimated_commission"`
	CommissionNote      string   `json:"commission_note"`
}

// GuardrailSnapshot echoes the thresholds that were active for a request.
type GuardrailSnapshot struct {
	MinAvgRating             float64  `json:"min_avg_rating"`
	MinRatingCount           int64    `json:"min_rating_count"`
	PriceMin                 *float64 `json:"price_min"`
	PriceMax                 *float64 `json:"price_max"`
	MaxDaysSinceLastActivity int64    `json:"max_days_since_last_activity"`
}

type RecommendationResponse struct {
	Query      string            `json:"query"`
	Category   string            `json:"category,omitempty"`
	Candidates int               `json:"candidates"`
	Passed     int               `json:"passed"`
	Returned   int               `json:"returned"`
	Guardrails GuardrailSnapshot `json:"filtered_stats"`
	Items      []ScoredItem      `json:"items"`
	// Excluded carries guardrail failures when debug mode is requested.
	Excluded []ScoredItem `json:"excluded,omitempty"`
	// Warnings surfaces config defects the engine degraded around.
	Warnings []string `json:"warnings,omitempty"`
}
