// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiracer/internal/game"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/obslog"
	"github.com/verte-zerg/tuiracer/internal/settings"
)

// NameStore persists the player name.
type NameStore interface {
	SetUsername(ctx context.Context, name string) error
}

type timerMsg struct {
	timer game.Timer
	at    time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine *game.Engine
	names  NameStore
	prefs  model.Settings
	log    *zap.Logger

	nameInput textinput.Model
	askName   bool
	notice    string

	width  int
	height int

	accentStyle lipgloss.Style
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	hiddenStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	lavaStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6A00"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

const (
	lavaFull     = "█"
	lavaEmpty    = "░"
	scrollFactor = 0.5
)

// NewModel constructs a typing TUI model around engine. When the engine has
// no username, the player is asked for one before the first game.
func NewModel(engine *game.Engine, names NameStore, prefs model.Settings, log *zap.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 32
	ti.Prompt = "> "

	m := &Model{
		engine:      engine,
		names:       names,
		prefs:       prefs,
		log:         obslog.OrNop(log),
		nameInput:   ti,
		askName:     engine.Username() == "",
		accentStyle: lipgloss.NewStyle().Bold(true).Foreground(accentColor(prefs.AccentColor)),
	}
	if m.askName {
		m.nameInput.Focus()
	}
	return m
}

func accentColor(name string) lipgloss.Color {
	hex, ok := settings.AccentColors[name]
	if !ok {
		hex = settings.AccentColors[settings.Defaults().AccentColor]
	}
	return lipgloss.Color(hex)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.askName {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timerMsg:
		if m.engine.Fire(ctx, msg.timer, msg.at) {
			return m, arm(msg.timer)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.engine.Abandon()
			return m, tea.Quit
		}
		if m.askName {
			return m.updateName(ctx, msg)
		}
		switch m.engine.State() {
		case game.StatePlaying:
			return m.updatePlaying(ctx, msg)
		default:
			return m.updateIdle(msg)
		}
	default:
		if m.askName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) updateName(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.notice = "Please enter a name."
			return m, nil
		}
		if err := m.names.SetUsername(ctx, name); err != nil {
			m.log.Warn("failed to save username", zap.Error(err))
			m.notice = "Could not save your name; it will be used for this run only."
		} else {
			m.notice = ""
		}
		m.engine.SetUsername(name)
		m.askName = false
		m.nameInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeySpace:
		return m, m.start()
	case tea.KeyTab:
		m.engine.SetMode(nextMode(m.engine.Mode()))
	case tea.KeyShiftTab:
		m.engine.SetDifficulty(nextDifficulty(m.engine.Difficulty()))
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updatePlaying(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := []rune(m.engine.InputText())
	switch msg.Type {
	case tea.KeyEsc:
		m.engine.Finish(ctx, false)
		return m, nil
	case tea.KeyTab:
		m.engine.SetMode(nextMode(m.engine.Mode()))
		return m, nil
	case tea.KeyShiftTab:
		m.engine.SetDifficulty(nextDifficulty(m.engine.Difficulty()))
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		if len(input) == 0 {
			return m, nil
		}
		input = input[:len(input)-1]
	case tea.KeySpace:
		input = appendClamped(input, []rune{' '}, m.engine.TextLen())
	case tea.KeyRunes:
		input = appendClamped(input, msg.Runes, m.engine.TextLen())
	default:
		return m, nil
	}
	m.engine.Input(ctx, string(input))
	return m, nil
}

func (m *Model) start() tea.Cmd {
	m.notice = ""
	timers := m.engine.Start()
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		cmds = append(cmds, arm(t))
	}
	return tea.Batch(cmds...)
}

func arm(t game.Timer) tea.Cmd {
	return tea.Tick(t.Interval, func(at time.Time) tea.Msg {
		return timerMsg{timer: t, at: at}
	})
}

func appendClamped(input, runes []rune, limit int) []rune {
	for _, r := range runes {
		if len(input) >= limit {
			break
		}
		input = append(input, r)
	}
	return input
}

func nextMode(current model.Mode) model.Mode {
	for i, mode := range model.Modes {
		if mode == current {
			return model.Modes[(i+1)%len(model.Modes)]
		}
	}
	return model.Modes[0]
}

func nextDifficulty(current model.Difficulty) model.Difficulty {
	for i, d := range model.Difficulties {
		if d == current {
			return model.Difficulties[(i+1)%len(model.Difficulties)]
		}
	}
	return model.Difficulties[0]
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := m.contentWidth()
	var body string
	switch {
	case m.askName:
		body = m.viewName()
	case m.engine.State() == game.StatePlaying:
		body = m.viewPlaying(contentWidth)
	case m.engine.State() == game.StateFinished:
		body = m.viewFinished()
	default:
		body = m.viewReady()
	}
	if m.notice != "" {
		body += "\n\n" + noticeStyle.Render(m.notice)
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(body)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return placed + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) header() string {
	mode := m.engine.Mode()
	title := m.accentStyle.Render(mode.Title())
	meta := footerStyle.Render(fmt.Sprintf("%s · %s", m.engine.Difficulty(), m.engine.Username()))
	return title + "  " + meta + "\n" + pendingStyle.Render(mode.Description())
}

func (m *Model) viewName() string {
	return m.accentStyle.Render("Welcome to TUI Racer") + "\n\n" +
		"Choose a name for the leaderboard:\n\n" + m.nameInput.View()
}

func (m *Model) viewReady() string {
	return m.header() + "\n\n" + correctStyle.Render("Press enter to start.")
}

func (m *Model) viewPlaying(width int) string {
	target := []rune(m.engine.Text())
	input := []rune(m.engine.InputText())
	cursorIndex := -1
	if len(input) < len(target) {
		cursorIndex = len(input)
	}
	hidden := m.engine.Mode() == model.ModeInvisible && !m.engine.Visible()
	runes := buildStyledRunes(target, input, cursorIndex, hidden)
	if m.engine.Mode() == model.ModeSpeed && m.prefs.AnimationsEnabled {
		runes = runes[speedScroll(target, len(input), scrollFactor*m.prefs.AnimationSpeed):]
	}

	parts := []string{m.header()}
	if m.engine.Mode() == model.ModeLava {
		parts = append(parts, renderLava(m.engine.Hazard(), width))
	}
	parts = append(parts, wrapStyledRunes(runes, width))
	return strings.Join(parts, "\n\n")
}

func renderLava(level float64, width int) string {
	label := fmt.Sprintf(" Lava %3.0f%%", level)
	barWidth := width - len(label)
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int(level / game.MaxHazard * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	return lavaStyle.Render(strings.Repeat(lavaFull, filled)) +
		hiddenStyle.Render(strings.Repeat(lavaEmpty, barWidth-filled)) +
		lavaStyle.Render(label)
}

func (m *Model) viewFinished() string {
	r, _ := m.engine.Result()
	headline := "Game Complete!"
	if !r.Completed {
		headline = "Game Over"
		if r.Mode == model.ModeLava && m.engine.Hazard() >= game.MaxHazard {
			headline = "The lava got you!"
		}
	}
	wpmLine, accLine := feedback(r)
	lines := []string{
		m.header(),
		"",
		m.accentStyle.Render(headline),
		fmt.Sprintf("WPM %.1f   Accuracy %.1f%%   Errors %d   Time %ds", r.WPM, r.Accuracy, r.Errors, m.engine.Elapsed()),
		"",
		correctStyle.Render(wpmLine),
		pendingStyle.Render(accLine),
	}
	if err := m.engine.SaveErr(); err != nil {
		lines = append(lines, "", noticeStyle.Render("Result could not be saved: "+err.Error()))
	}
	lines = append(lines, "", correctStyle.Render("Press enter to play again."))
	return strings.Join(lines, "\n")
}

// feedback returns the finished-screen messages for speed and accuracy.
func feedback(r model.GameResult) (string, string) {
	var wpmLine string
	switch {
	case r.WPM > 60:
		wpmLine = "Impressive! You're a typing master!"
	case r.WPM > 40:
		wpmLine = "Well done! You're above average!"
	default:
		wpmLine = "Good effort! Keep practicing to improve your speed."
	}
	var accLine string
	switch {
	case r.Accuracy > 95:
		accLine = "Amazing accuracy!"
	case r.Accuracy > 85:
		accLine = "Good accuracy!"
	default:
		accLine = "Keep practicing for better accuracy."
	}
	return wpmLine, accLine
}

func (m *Model) renderFooter() string {
	var segments []string
	switch {
	case m.askName:
		segments = []string{"enter save", "esc quit"}
	case m.engine.State() == game.StatePlaying:
		segments = []string{
			fmt.Sprintf("Time %ds", m.engine.Elapsed()),
			fmt.Sprintf("Progress %d%%", m.engine.Progress()),
			fmt.Sprintf("Errors %d", m.engine.Errors()),
			"esc give up",
			"tab mode",
			"shift+tab difficulty",
		}
	default:
		segments = []string{"enter play", "tab mode", "shift+tab difficulty", "esc quit"}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
