package stats

import (
	"math"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// Achievement is a predicate and progress measure over a user's results.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Max         float64

	unlocked func([]model.GameResult) bool
	progress func([]model.GameResult) float64
}

// AchievementStatus is an evaluated achievement.
type AchievementStatus struct {
	Achievement
	Unlocked bool
	Progress float64
	Percent  int
}

var achievements = []Achievement{
	{
		ID:          "first_game",
		Name:        "First Steps",
		Description: "Complete your first typing game",
		Max:         1,
		unlocked:    func(rs []model.GameResult) bool { return len(rs) > 0 },
		progress:    func(rs []model.GameResult) float64 { return math.Min(float64(len(rs)), 1) },
	},
	{
		ID:          "speed_demon",
		Name:        "Speed Demon",
		Description: "Reach 60+ WPM in any game mode",
		Max:         60,
		unlocked: func(rs []model.GameResult) bool {
			return someResult(rs, func(r model.GameResult) bool { return r.WPM >= 60 })
		},
		progress: func(rs []model.GameResult) float64 { return math.Min(maxOf(rs, wpmOf), 60) },
	},
	{
		ID:          "perfect_accuracy",
		Name:        "Perfectionist",
		Description: "Complete a game with 100% accuracy",
		Max:         100,
		unlocked: func(rs []model.GameResult) bool {
			return someResult(rs, func(r model.GameResult) bool { return r.Accuracy == 100 })
		},
		progress: func(rs []model.GameResult) float64 { return math.Min(maxOf(rs, accuracyOf), 100) },
	},
	modeCount("lava_master", "Lava Master", "Complete 5 games in Lava mode", model.ModeLava, 5),
	modeCount("invisible_ninja", "Invisible Ninja", "Complete 3 games in Invisible mode", model.ModeInvisible, 3),
	modeCount("speed_runner", "Speed Runner", "Complete 3 games in Speed mode", model.ModeSpeed, 3),
	{
		ID:          "all_rounder",
		Name:        "All-Rounder",
		Description: "Complete at least one game in each mode",
		Max:         float64(len(model.Modes)),
		unlocked: func(rs []model.GameResult) bool {
			return completedModes(rs) == len(model.Modes)
		},
		progress: func(rs []model.GameResult) float64 { return float64(completedModes(rs)) },
	},
	{
		ID:          "marathon_typer",
		Name:        "Marathon Typer",
		Description: "Complete 10 games in any mode",
		Max:         10,
		unlocked:    func(rs []model.GameResult) bool { return len(completedOnly(rs)) >= 10 },
		progress:    func(rs []model.GameResult) float64 { return math.Min(float64(len(completedOnly(rs))), 10) },
	},
	{
		ID:          "hard_mode",
		Name:        "Challenge Accepted",
		Description: "Complete a game on Hard difficulty",
		Max:         1,
		unlocked:    completedHard,
		progress: func(rs []model.GameResult) float64 {
			if completedHard(rs) {
				return 1
			}
			return 0
		},
	},
}

// EvaluateAchievements evaluates every achievement over a user's results.
func EvaluateAchievements(results []model.GameResult) []AchievementStatus {
	out := make([]AchievementStatus, 0, len(achievements))
	for _, a := range achievements {
		progress := a.progress(results)
		percent := int(math.Round(progress / a.Max * 100))
		if percent > 100 {
			percent = 100
		}
		out = append(out, AchievementStatus{
			Achievement: a,
			Unlocked:    a.unlocked(results),
			Progress:    progress,
			Percent:     percent,
		})
	}
	return out
}

// UnlockedCount counts unlocked achievements.
func UnlockedCount(statuses []AchievementStatus) int {
	n := 0
	for _, s := range statuses {
		if s.Unlocked {
			n++
		}
	}
	return n
}

func modeCount(id, name, desc string, mode model.Mode, target int) Achievement {
	count := func(rs []model.GameResult) int {
		n := 0
		for _, r := range rs {
			if r.Mode == mode && r.Completed {
				n++
			}
		}
		return n
	}
	return Achievement{
		ID:          id,
		Name:        name,
		Description: desc,
		Max:         float64(target),
		unlocked:    func(rs []model.GameResult) bool { return count(rs) >= target },
		progress:    func(rs []model.GameResult) float64 { return float64(count(rs)) },
	}
}

func completedModes(rs []model.GameResult) int {
	n := 0
	for _, mode := range model.Modes {
		if someResult(rs, func(r model.GameResult) bool { return r.Mode == mode && r.Completed }) {
			n++
		}
	}
	return n
}

func completedHard(rs []model.GameResult) bool {
	return someResult(rs, func(r model.GameResult) bool {
		return r.Difficulty == model.DifficultyHard && r.Completed
	})
}

func someResult(rs []model.GameResult, pred func(model.GameResult) bool) bool {
	for _, r := range rs {
		if pred(r) {
			return true
		}
	}
	return false
}

func wpmOf(r model.GameResult) float64      { return r.WPM }
func accuracyOf(r model.GameResult) float64 { return r.Accuracy }

func maxOf(rs []model.GameResult, value func(model.GameResult) float64) float64 {
	out := 0.0
	for _, r := range rs {
		if v := value(r); v > out {
			out = v
		}
	}
	return out
}
