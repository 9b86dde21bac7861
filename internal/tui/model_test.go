package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuiracer/internal/game"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/settings"
)

type fixedText string

func (f fixedText) Text(model.Difficulty) string { return string(f) }

type names struct {
	saved string
	err   error
}

func (n *names) SetUsername(_ context.Context, name string) error {
	n.saved = name
	return n.err
}

type results struct {
	list []model.GameResult
}

func (r *results) Append(_ context.Context, result model.GameResult) error {
	r.list = append(r.list, result)
	return nil
}

func newTestModel(t *testing.T, username string, mode model.Mode) (*Model, *results, *names) {
	t.Helper()
	rec := &results{}
	engine := game.New(game.Options{
		Mode:       mode,
		Difficulty: model.DifficultyEasy,
		Username:   username,
		Texts:      fixedText("ab c"),
		Recorder:   rec,
	})
	n := &names{}
	return NewModel(engine, n, settings.Defaults(), nil), rec, n
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeRunes(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(key(tea.KeySpace))
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestUsernamePrompt(t *testing.T) {
	m, _, n := newTestModel(t, "", model.ModeClassic)
	if !m.askName {
		t.Fatalf("expected name prompt without a username")
	}
	m.Update(key(tea.KeyEnter))
	if !m.askName || m.notice == "" {
		t.Fatalf("blank name must be rejected")
	}
	typeRunes(m, "bob")
	m.Update(key(tea.KeyEnter))
	if m.askName {
		t.Fatalf("prompt should close after a name is entered")
	}
	if n.saved != "bob" || m.engine.Username() != "bob" {
		t.Fatalf("expected name saved, got %q / %q", n.saved, m.engine.Username())
	}
}

func TestUsernameSaveFailureKeepsName(t *testing.T) {
	m, _, n := newTestModel(t, "", model.ModeClassic)
	n.err = errors.New("read-only")
	typeRunes(m, "eve")
	m.Update(key(tea.KeyEnter))
	if m.askName || m.engine.Username() != "eve" {
		t.Fatalf("name should be used for the run even if saving fails")
	}
	if !strings.Contains(m.View(), "Could not save") {
		t.Fatalf("expected notice in view")
	}
}

func TestTypingFinishesGame(t *testing.T) {
	m, rec, _ := newTestModel(t, "alice", model.ModeClassic)
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("expected timer commands on start")
	}
	if m.engine.State() != game.StatePlaying {
		t.Fatalf("expected playing, got %s", m.engine.State())
	}
	typeRunes(m, "ab")
	m.Update(key(tea.KeyBackspace))
	if m.engine.InputText() != "a" {
		t.Fatalf("backspace should remove the last rune, got %q", m.engine.InputText())
	}
	typeRunes(m, "b c")
	if m.engine.State() != game.StateFinished {
		t.Fatalf("expected finished, got %s", m.engine.State())
	}
	if len(rec.list) != 1 || !rec.list[0].Completed || rec.list[0].Username != "alice" {
		t.Fatalf("unexpected results: %+v", rec.list)
	}
	if !strings.Contains(m.View(), "Game Complete!") {
		t.Fatalf("expected finished view")
	}
}

func TestInputClampedToText(t *testing.T) {
	m, _, _ := newTestModel(t, "alice", model.ModeClassic)
	m.Update(key(tea.KeyEnter))
	typeRunes(m, "xxxxxxx")
	if got := len([]rune(m.engine.InputText())); got != 4 {
		t.Fatalf("expected input clamped to 4 runes, got %d", got)
	}
	if m.engine.Errors() != 4 {
		t.Fatalf("expected 4 errors, got %d", m.engine.Errors())
	}
}

func TestEscGivesUp(t *testing.T) {
	m, rec, _ := newTestModel(t, "alice", model.ModeClassic)
	m.Update(key(tea.KeyEnter))
	typeRunes(m, "a")
	m.Update(key(tea.KeyEsc))
	if m.engine.State() != game.StateFinished {
		t.Fatalf("expected finished after esc")
	}
	if len(rec.list) != 1 || rec.list[0].Completed {
		t.Fatalf("expected one incomplete result, got %+v", rec.list)
	}
	if !strings.Contains(m.View(), "Game Over") {
		t.Fatalf("expected game over view")
	}
}

func TestTabDiscardsSession(t *testing.T) {
	m, rec, _ := newTestModel(t, "alice", model.ModeClassic)
	m.Update(key(tea.KeyEnter))
	typeRunes(m, "a")
	m.Update(key(tea.KeyTab))
	if m.engine.State() != game.StateReady || m.engine.Mode() != model.ModeLava {
		t.Fatalf("expected ready in lava mode, got %s %s", m.engine.State(), m.engine.Mode())
	}
	m.Update(key(tea.KeyShiftTab))
	if m.engine.Difficulty() != model.DifficultyMedium {
		t.Fatalf("expected medium difficulty, got %s", m.engine.Difficulty())
	}
	if len(rec.list) != 0 {
		t.Fatalf("switching must not record results")
	}
}

func TestStaleTimerMessageIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, "alice", model.ModeLava)
	m.Update(key(tea.KeyEnter))
	stale := game.Timer{Kind: game.TimerLava, Interval: game.LavaInterval, Repeat: true, Gen: 0}
	_, cmd := m.Update(timerMsg{timer: stale, at: time.Now()})
	if cmd != nil || m.engine.Hazard() != 0 {
		t.Fatalf("stale timer should be dropped")
	}
}

func TestFeedback(t *testing.T) {
	cases := []struct {
		wpm, acc       float64
		wantWPM, wantA string
	}{
		{61, 96, "Impressive!", "Amazing accuracy!"},
		{41, 90, "Well done!", "Good accuracy!"},
		{40, 85, "Good effort!", "Keep practicing for better accuracy."},
	}
	for _, tc := range cases {
		w, a := feedback(model.GameResult{WPM: tc.wpm, Accuracy: tc.acc})
		if !strings.HasPrefix(w, tc.wantWPM) || a != tc.wantA {
			t.Fatalf("feedback(%v, %v) = %q, %q", tc.wpm, tc.acc, w, a)
		}
	}
}

func TestRenderFooterPlaying(t *testing.T) {
	m, _, _ := newTestModel(t, "alice", model.ModeClassic)
	m.Update(key(tea.KeyEnter))
	typeRunes(m, "ax")
	out := m.renderFooter()
	for _, want := range []string{"Time 0s", "Progress 50%", "Errors 1", "esc give up"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestRenderLava(t *testing.T) {
	out := renderLava(50, 30)
	if strings.Count(out, lavaFull) != 10 {
		t.Fatalf("expected half-filled bar, got %q", out)
	}
	if !strings.Contains(out, "Lava  50%") {
		t.Fatalf("expected lava label, got %q", out)
	}
}
