package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// LeaderboardSize is the maximum number of leaderboard entries.
const LeaderboardSize = 10

// LeaderboardEntry is one ranked result.
type LeaderboardEntry struct {
	Rank   int
	Result model.GameResult
}

// Leaderboard ranks completed results matching cfg's mode, window, and
// difficulty by WPM, highest first. Ties keep insertion order.
func Leaderboard(results []model.GameResult, cfg model.StatsConfig, now time.Time) []LeaderboardEntry {
	filtered := completedOnly(filterResults(results, cfg.Mode, cfg.Difficulty, cfg.Window, now))
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].WPM > filtered[j].WPM
	})
	if len(filtered) > LeaderboardSize {
		filtered = filtered[:LeaderboardSize]
	}
	entries := make([]LeaderboardEntry, len(filtered))
	for i, r := range filtered {
		entries[i] = LeaderboardEntry{Rank: i + 1, Result: r}
	}
	return entries
}
