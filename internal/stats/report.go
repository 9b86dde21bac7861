package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// Source provides stored results.
type Source interface {
	All() []model.GameResult
	ByUser(username string) []model.GameResult
}

// Report contains precomputed data for the stats views.
type Report struct {
	Leaderboard  []LeaderboardEntry
	Summary      Summary
	Achievements []AchievementStatus
	UserResults  int
}

// BuildReport evaluates every projection for cfg at now. The leaderboard
// spans all users; the summary and achievements use cfg.Username's results.
func BuildReport(src Source, cfg model.StatsConfig, now time.Time) Report {
	userResults := src.ByUser(cfg.Username)
	return Report{
		Leaderboard:  Leaderboard(src.All(), cfg, now),
		Summary:      Summarize(userResults, cfg, now),
		Achievements: EvaluateAchievements(userResults),
		UserResults:  len(userResults),
	}
}

// RenderReport prints every projection of r as plain text. Bars take the
// terminal width and are colored only when w is a terminal.
func RenderReport(w io.Writer, r Report, cfg model.StatsConfig) error {
	mode := cfg.Mode
	if mode == "" {
		mode = model.All
	}
	if _, err := fmt.Fprintf(w, "Leaderboard (%s, mode: %s)\n", cfg.Window.Label(), mode); err != nil {
		return err
	}
	if err := RenderLeaderboard(w, r.Leaderboard, cfg.Username); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\nStats for %s\n", cfg.Username); err != nil {
		return err
	}
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if r.Summary.TotalGames > 0 {
		if err := RenderDailyBars(w, "WPM Over Time", r.Summary.Daily, MetricWPM, 0, false); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := RenderDailyBars(w, "Accuracy Over Time", r.Summary.Daily, MetricAccuracy, 0, false); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return RenderAchievements(w, r.Achievements)
}
