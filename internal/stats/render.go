package stats

import (
	"fmt"
	"io"
)

// RenderLeaderboard prints the ranked entries, marking rows of username.
func RenderLeaderboard(w io.Writer, entries []LeaderboardEntry, username string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No data available for the selected filters. Try changing your selection.")
		return err
	}
	headers := []string{"Rank", "Player", "WPM", "Accuracy", "Mode", "Difficulty", "Date"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		player := e.Result.Username
		if username != "" && player == username {
			player += " (you)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Rank),
			player,
			fmt.Sprintf("%.1f", e.Result.WPM),
			fmt.Sprintf("%.1f%%", e.Result.Accuracy),
			string(e.Result.Mode),
			string(e.Result.Difficulty),
			e.Result.Timestamp.Local().Format("2006-01-02"),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints the stats projection.
func RenderSummary(w io.Writer, s Summary) error {
	if s.TotalGames == 0 {
		_, err := fmt.Fprintln(w, "No data available yet. Complete some typing games to see your stats!")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Average WPM: %.1f", s.AverageWPM),
		fmt.Sprintf("Best WPM: %.1f", s.MaxWPM),
		fmt.Sprintf("Average Accuracy: %.1f%%", s.AverageAccuracy),
		fmt.Sprintf("Completed: %d/%d", s.CompletedGames, s.TotalGames),
	}
	if len(s.Daily) > 0 {
		wpms := make([]float64, len(s.Daily))
		for i, p := range s.Daily {
			wpms[i] = p.WPM
		}
		lines = append(lines, fmt.Sprintf("Last %d days: [%s]", len(s.Daily), Sparkline(wpms)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAchievements prints every achievement with its progress.
func RenderAchievements(w io.Writer, statuses []AchievementStatus) error {
	if _, err := fmt.Fprintf(w, "Achievements (%d/%d unlocked)\n", UnlockedCount(statuses), len(statuses)); err != nil {
		return err
	}
	headers := []string{"", "Name", "Progress", "%", "Description"}
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		mark := " "
		if s.Unlocked {
			mark = "✓"
		}
		rows = append(rows, []string{
			mark,
			s.Name,
			fmt.Sprintf("%s / %s", formatProgress(s.Progress), formatProgress(s.Max)),
			fmt.Sprintf("%d%%", s.Percent),
			s.Description,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatProgress(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
