package stats

import (
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

func isAll(v string) bool {
	return v == "" || v == model.All
}

// filterResults keeps results matching mode, difficulty, and window.
// Empty or "all" values disable the corresponding filter. Order is kept.
func filterResults(results []model.GameResult, mode, difficulty string, window model.TimeWindow, now time.Time) []model.GameResult {
	cutoff, bounded := window.Cutoff(now)
	out := make([]model.GameResult, 0, len(results))
	for _, r := range results {
		if !isAll(mode) && string(r.Mode) != mode {
			continue
		}
		if bounded && r.Timestamp.Before(cutoff) {
			continue
		}
		if !isAll(difficulty) && string(r.Difficulty) != difficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

func completedOnly(results []model.GameResult) []model.GameResult {
	out := make([]model.GameResult, 0, len(results))
	for _, r := range results {
		if r.Completed {
			out = append(out, r)
		}
	}
	return out
}
