package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func result(mode model.Mode, diff model.Difficulty, wpm float64, at time.Time, completed bool) model.GameResult {
	return model.GameResult{
		Mode:       mode,
		WPM:        wpm,
		Accuracy:   100,
		Text:       "abc",
		Timestamp:  at,
		Completed:  completed,
		Difficulty: diff,
		Username:   "alice",
	}
}

func TestLeaderboardDayWindowTopTen(t *testing.T) {
	var results []model.GameResult
	for i := 0; i < 15; i++ {
		at := testNow.Add(-time.Duration(i+1) * time.Hour)
		results = append(results, result(model.ModeClassic, model.DifficultyEasy, float64(10+i), at, true))
	}
	for i := 0; i < 3; i++ {
		results = append(results, result(model.ModeClassic, model.DifficultyEasy, 500, testNow.Add(-48*time.Hour), true))
	}

	cfg := model.StatsConfig{Mode: "classic", Window: model.WindowDay, Difficulty: model.All}
	entries := Leaderboard(results, cfg, testNow)
	if len(entries) != LeaderboardSize {
		t.Fatalf("expected %d entries, got %d", LeaderboardSize, len(entries))
	}
	for i, e := range entries {
		if e.Result.WPM == 500 {
			t.Fatalf("entry outside the day window leaked into the leaderboard")
		}
		if e.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, e.Rank)
		}
		if i > 0 && entries[i-1].Result.WPM < e.Result.WPM {
			t.Fatalf("leaderboard not sorted descending at %d", i)
		}
	}
	if entries[0].Result.WPM != 24 {
		t.Fatalf("expected top WPM 24, got %v", entries[0].Result.WPM)
	}
}

func TestLeaderboardFilters(t *testing.T) {
	results := []model.GameResult{
		result(model.ModeClassic, model.DifficultyEasy, 50, testNow, true),
		result(model.ModeLava, model.DifficultyEasy, 90, testNow, true),
		result(model.ModeClassic, model.DifficultyHard, 70, testNow, true),
		result(model.ModeClassic, model.DifficultyEasy, 99, testNow, false),
	}

	entries := Leaderboard(results, model.StatsConfig{Mode: "classic", Difficulty: "easy"}, testNow)
	if len(entries) != 1 || entries[0].Result.WPM != 50 {
		t.Fatalf("expected only completed classic/easy entry, got %+v", entries)
	}

	entries = Leaderboard(results, model.StatsConfig{Mode: model.All, Difficulty: model.All, Window: model.WindowAll}, testNow)
	if len(entries) != 3 {
		t.Fatalf("expected 3 completed entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.Result.Completed {
			t.Fatalf("incomplete result in leaderboard")
		}
	}
}

func TestLeaderboardStableTies(t *testing.T) {
	a := result(model.ModeClassic, model.DifficultyEasy, 40, testNow, true)
	a.Username = "first"
	b := result(model.ModeClassic, model.DifficultyEasy, 40, testNow, true)
	b.Username = "second"
	entries := Leaderboard([]model.GameResult{a, b}, model.StatsConfig{}, testNow)
	if entries[0].Result.Username != "first" || entries[1].Result.Username != "second" {
		t.Fatalf("ties must keep insertion order: %+v", entries)
	}
}

func TestWindowCutoffs(t *testing.T) {
	results := []model.GameResult{
		result(model.ModeClassic, model.DifficultyEasy, 1, testNow.Add(-6*24*time.Hour), true),
		result(model.ModeClassic, model.DifficultyEasy, 2, testNow.Add(-8*24*time.Hour), true),
		result(model.ModeClassic, model.DifficultyEasy, 3, testNow.AddDate(0, -1, 1), true),
		result(model.ModeClassic, model.DifficultyEasy, 4, testNow.AddDate(0, -2, 0), true),
	}
	if n := len(Leaderboard(results, model.StatsConfig{Window: model.WindowWeek}, testNow)); n != 1 {
		t.Fatalf("week window: expected 1, got %d", n)
	}
	if n := len(Leaderboard(results, model.StatsConfig{Window: model.WindowMonth}, testNow)); n != 3 {
		t.Fatalf("month window: expected 3, got %d", n)
	}
}
