package funnel

import (
	"time"

	"cpsGrowth/domain"
)

// Aggregate counts distinct actors per stage over the lookback window.
// The window is [now - lookbackDays, now): inclusive start, exclusive end.
//
// Counting is reached-at-least-once: an actor belongs to every stage they
// produced a mapped event for, so a buyer who never carted still counts in
// the buy stage. Monotonic decrease across stages is not enforced here;
// that check belongs to the analyzer.
func Aggregate(itemID string, events []domain.BehaviorEvent, stages []domain.FunnelStage, lookbackDays int, now time.Time) domain.FunnelMetrics {
	start := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	stageOf := make(map[string][]int, len(stages))
	for i, st := range stages {
		for _, kind := range st.Events {
			stageOf[kind] = append(stageOf[kind], i)
		}
	}

	actors := make([]map[string]struct{}, len(stages))
	for i := range actors {
		actors[i] = make(map[string]struct{})
	}

	for _, ev := range events {
		if ev.Ts.Before(start) || !ev.Ts.Before(now) {
			continue
		}
		for _, idx := range stageOf[ev.Behavior] {
			actors[idx][ev.UserID] = struct{}{}
		}
	}

	counts := make([]domain.StageCount, len(stages))
	for i, st := range stages {
		counts[i] = domain.StageCount{Stage: st.Name, Actors: int64(len(actors[i]))}
	}

	return domain.FunnelMetrics{
		ItemID:       itemID,
		LookbackDays: lookbackDays,
		Stages:       counts,
	}
}
