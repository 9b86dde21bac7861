package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/tuiracer/internal/config"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/settings"
	"github.com/verte-zerg/tuiracer/internal/store"
)

func TestBuildPlayConfig(t *testing.T) {
	cfg, err := buildPlayConfig("Lava", "hard", "alice", "/tmp/texts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != model.ModeLava || cfg.Difficulty != model.DifficultyHard || cfg.Username != "alice" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := buildPlayConfig("turbo", "easy", "", ""); !errors.Is(err, model.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := buildPlayConfig("classic", "brutal", "", ""); !errors.Is(err, model.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig("bob", "all", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != model.All || cfg.Difficulty != model.All || cfg.Window != model.WindowAll {
		t.Fatalf("expected all filters, got %+v", cfg)
	}
	cfg, err = buildStatsConfig("bob", "speed", "week", "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != "speed" || cfg.Window != model.WindowWeek || cfg.Difficulty != "easy" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := buildStatsConfig("bob", "all", "year", "all"); !errors.Is(err, model.ErrUnknownWindow) {
		t.Fatalf("expected ErrUnknownWindow, got %v", err)
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if cfg.Game.Mode != nil || cfg.Log.File != nil {
		t.Fatalf("template values should be commented out: %+v", cfg)
	}
}

func TestBuildStatsConfigDefaultsUnsetPlayer(t *testing.T) {
	cfg, err := buildStatsConfig("", "all", "all", "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Username != store.DefaultUsername {
		t.Fatalf("expected %q for an unset player, got %q", store.DefaultUsername, cfg.Username)
	}
}

func TestStatsCommandPrintsPlainReport(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"stats", "--window", "week"})
	if err := root.Execute(); err != nil {
		t.Fatalf("stats: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Leaderboard (Last Week, mode: all)", "Stats for player", "No data available yet", "Achievements (0/"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestWriteSettingsMarksDefaults(t *testing.T) {
	s := settings.Defaults()
	s.AccentColor = "red"
	var buf bytes.Buffer
	if err := writeSettings(&buf, s, map[string]bool{settings.NameAccentColor: true}); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(settings.Names()) {
		t.Fatalf("expected one line per setting, got %q", lines)
	}
	if lines[len(lines)-1] != "accent = red" {
		t.Fatalf("stored accent should not be marked default: %q", lines[len(lines)-1])
	}
	if lines[0] != "sound = true (default)" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}
