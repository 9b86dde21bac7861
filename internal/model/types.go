// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// All is the filter value that disables a mode, difficulty, or window filter.
const All = "all"

var (
	// ErrUnknownMode is returned when a mode name is not recognized.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownDifficulty is returned when a difficulty name is not recognized.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrUnknownWindow is returned when a time window name is not recognized.
	ErrUnknownWindow = errors.New("unknown time window")
)

// Mode is the hazard variant active during a session.
type Mode string

// Game modes.
const (
	ModeClassic   Mode = "classic"
	ModeLava      Mode = "lava"
	ModeInvisible Mode = "invisible"
	ModeSpeed     Mode = "speed"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeClassic, ModeLava, ModeInvisible, ModeSpeed}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeLava:
		return "Lava Mode"
	case ModeInvisible:
		return "Invisible Mode"
	case ModeSpeed:
		return "Speed Mode"
	default:
		return "Classic Mode"
	}
}

// Description returns the one-line rules of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeLava:
		return "Type before the lava reaches the top!"
	case ModeInvisible:
		return "The text will disappear after 3 seconds!"
	case ModeSpeed:
		return "Words move faster as you type!"
	default:
		return "Type the text as fast as you can!"
	}
}

// Difficulty is the prompt difficulty tier.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// TimeWindow bounds result queries to a trailing period.
type TimeWindow string

// Time windows.
const (
	WindowAll   TimeWindow = All
	WindowDay   TimeWindow = "day"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
)

// Windows lists every time window in display order.
var Windows = []TimeWindow{WindowAll, WindowDay, WindowWeek, WindowMonth}

// ParseWindow parses a time window name. Empty means all.
func ParseWindow(s string) (TimeWindow, error) {
	w := TimeWindow(strings.ToLower(strings.TrimSpace(s)))
	if w == "" {
		return WindowAll, nil
	}
	for _, known := range Windows {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Cutoff returns the earliest timestamp inside the window. The boolean is
// false for WindowAll.
func (w TimeWindow) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowDay:
		return now.Add(-24 * time.Hour), true
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case WindowMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// Label returns the display name of the window.
func (w TimeWindow) Label() string {
	switch w {
	case WindowDay:
		return "Last 24h"
	case WindowWeek:
		return "Last Week"
	case WindowMonth:
		return "Last Month"
	default:
		return "All Time"
	}
}

// GameResult is the immutable record of one finished session.
type GameResult struct {
	Mode       Mode       `json:"mode" yaml:"mode"`
	WPM        float64    `json:"wpm" yaml:"wpm"`
	Accuracy   float64    `json:"accuracy" yaml:"accuracy"`
	Errors     int        `json:"errors" yaml:"errors"`
	Text       string     `json:"text" yaml:"text"`
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
	Completed  bool       `json:"completed" yaml:"completed"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Username   string     `json:"username,omitempty" yaml:"username,omitempty"`
}

// Config defines play settings.
type Config struct {
	Mode       Mode
	Difficulty Difficulty
	Username   string
	TextsDir   string
}

// StatsConfig defines filters for stats, leaderboard, and achievement views.
type StatsConfig struct {
	Username   string
	Mode       string
	Difficulty string
	Window     TimeWindow
}

// Settings holds the customization values persisted next to the results.
type Settings struct {
	SoundEnabled      bool    `json:"soundEnabled" yaml:"sound-enabled"`
	SoundVolume       int     `json:"soundVolume" yaml:"sound-volume"`
	AnimationsEnabled bool    `json:"animationsEnabled" yaml:"animations-enabled"`
	AnimationSpeed    float64 `json:"animationSpeed" yaml:"animation-speed"`
	AccentColor       string  `json:"accentColor" yaml:"accent-color"`
}
