package domain

// FunnelStage maps a named checkpoint to the event kinds that count toward it.
type FunnelStage struct {
	Name   string   `json:"name" koanf:"name"`
	Events []string `json:"events" koanf:"events"`
}

// StageCount is the distinct-actor count observed for one stage.
type StageCount struct {
	Stage  string `json:"stage"`
	Actors int64  `json:"actors"`
}

// FunnelMetrics is the aggregated funnel for one item over a lookback window.
// Counts use a reached-at-least-once semantic: an actor belongs to a stage
// when they produced at least one mapped event, whether or not they produced
// events for earlier stages.
type FunnelMetrics struct {
	ItemID       string       `json:"item_id"`
	LookbackDays int          `json:"lookback_days"`
	Stages       []StageCount `json:"stages"`
}

// Transition is a conversion rate between two adjacent stages.
type Transition struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// DropOff flags a transition that fell below its configured threshold.
type DropOff struct {
	Transition string  `json:"transition"`
	Rate       float64 `json:"rate"`
	Threshold  float64 `json:"threshold"`
	Issue      string  `json:"issue"`
}

type Diagnosis struct {
	Metrics           FunnelMetrics `json:"metrics"`
	Transitions       []Transition  `json:"transitions"`
	WeakestTransition *Transition   `json:"weakest_transition,omitempty"`
	DropOffs          []DropOff     `json:"drop_offs"`
	Recommendations   []string      `json:"recommendations"`
	Conclusion        string        `json:"conclusion"`
	// DataQualityFlags marks observed counts that rise across stages beyond
	// the configured tolerance, symptomatic of an upstream join defect.
	DataQualityFlags []string `json:"data_quality_flags,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}
