// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/stats"
)

const (
	tabLeaderboard = iota
	tabStats
	tabAchievements
)

const (
	filterMode = iota
	filterWindow
	filterDifficulty
	filterUser
)

const progressBarWidth = 20

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	unlockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	lockedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#36B5C8"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	source stats.Source
	cfg    model.StatsConfig
	now    func() time.Time

	report stats.Report

	tabs      []string
	activeTab int
	viewports []viewport.Model
	board     table.Model

	width  int
	height int

	editing      bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model over src.
func NewModel(src stats.Source, cfg model.StatsConfig, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	if cfg.Mode == "" {
		cfg.Mode = model.All
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = model.All
	}
	if cfg.Window == "" {
		cfg.Window = model.WindowAll
	}
	m := &Model{
		source: src,
		cfg:    cfg,
		now:    now,
		tabs:   []string{"Leaderboard", "Stats", "Achievements"},
		board:  buildBoardTable(0, 1),
	}
	m.initInputs()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshReport()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "m":
			m.cfg.Mode = cycle(modeOptions(), m.cfg.Mode)
			m.refreshReport()
			return m, nil
		case "w":
			m.cfg.Window = model.TimeWindow(cycle(windowOptions(), string(m.cfg.Window)))
			m.refreshReport()
			return m, nil
		case "d":
			m.cfg.Difficulty = cycle(difficultyOptions(), m.cfg.Difficulty)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabLeaderboard {
				m.board.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLeaderboard {
				m.board.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLeaderboard {
				var cmd tea.Cmd
				m.board, cmd = m.board.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Mode: "),
		newFilterInput("Window: "),
		newFilterInput("Difficulty: "),
		newFilterInput("User: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[filterMode].SetValue(m.cfg.Mode)
	m.filterInputs[filterWindow].SetValue(string(m.cfg.Window))
	m.filterInputs[filterDifficulty].SetValue(m.cfg.Difficulty)
	m.filterInputs[filterUser].SetValue(m.cfg.Username)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.board.SetWidth(m.width)
	m.board.SetHeight(maxInt(1, vpHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabLeaderboard {
		m.board.Focus()
	} else {
		m.board.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Player: %s  Mode: %s  Window: %s  Difficulty: %s",
		m.cfg.Username, m.cfg.Mode, m.cfg.Window.Label(), m.cfg.Difficulty)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.editing {
		if m.filterError != "" {
			return errorStyle.Render(m.filterError)
		}
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	return headerStyle.Render("Nav: left/right  Scroll: up/down  Mode: m  Window: w  Difficulty: d  Filters: /  Quit: q")
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.editing {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabLeaderboard {
		if len(m.report.Leaderboard) == 0 {
			return fitLines("No data available for the selected filters. Try changing your selection.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.board.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	m.report = stats.BuildReport(m.source, m.cfg, m.now())
	m.board.SetRows(boardRows(m.report.Leaderboard, m.cfg.Username))
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabStats].SetContent(renderStats(m.report.Summary, m.cfg.Window, width))
	m.viewports[tabAchievements].SetContent(renderAchievements(m.report.Achievements))
}

func buildBoardTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 4},
			{Title: "Player", Width: 18},
			{Title: "WPM", Width: 6},
			{Title: "Accuracy", Width: 8},
			{Title: "Mode", Width: 9},
			{Title: "Difficulty", Width: 10},
			{Title: "Date", Width: 10},
		}),
		table.WithHeight(maxInt(1, height-1)),
		table.WithFocused(true),
	)
	t.SetWidth(width)
	t.SetStyles(boardStyles())
	return t
}

func boardRows(entries []stats.LeaderboardEntry, username string) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		player := e.Result.Username
		if username != "" && player == username {
			player += " (you)"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.Rank),
			player,
			fmt.Sprintf("%.1f", e.Result.WPM),
			fmt.Sprintf("%.1f%%", e.Result.Accuracy),
			string(e.Result.Mode),
			string(e.Result.Difficulty),
			e.Result.Timestamp.Local().Format("2006-01-02"),
		})
	}
	return rows
}

func boardStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func renderStats(s stats.Summary, window model.TimeWindow, width int) string {
	if s.TotalGames == 0 {
		return "No data available yet. Complete some typing games to see your stats!"
	}
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", s.TotalGames)),
		metricCard("Completed", fmt.Sprintf("%d", s.CompletedGames)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AverageWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", s.MaxWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AverageAccuracy)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	title := headerStyle.Render(window.Label())
	charts := renderBars(s.Daily, width)
	return strings.TrimRight(title+"\n"+summary+"\n\n"+charts, "\n")
}

func renderBars(points []stats.DailyPoint, width int) string {
	barWidth := stats.BarWidthFor(width)
	charts := []struct {
		title  string
		metric stats.Metric
	}{
		{"WPM Over Time", stats.MetricWPM},
		{"Accuracy Over Time", stats.MetricAccuracy},
	}
	out := make([]string, 0, len(charts))
	for _, c := range charts {
		var buf bytes.Buffer
		if err := stats.RenderDailyBars(&buf, "", points, c.metric, barWidth, false); err != nil {
			return fmt.Sprintf("Failed to render chart: %v", err)
		}
		out = append(out, headerStyle.Render(c.title)+"\n"+barStyle.Render(strings.TrimRight(buf.String(), "\n")))
	}
	return strings.Join(out, "\n\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderAchievements(statuses []stats.AchievementStatus) string {
	lines := []string{
		cardValueStyle.Render(fmt.Sprintf("%d/%d unlocked", stats.UnlockedCount(statuses), len(statuses))),
		"",
	}
	for _, s := range statuses {
		style := lockedStyle
		mark := "○"
		if s.Unlocked {
			style = unlockedStyle
			mark = "●"
		}
		lines = append(lines,
			style.Render(mark+" "+s.Name),
			"  "+headerStyle.Render(s.Description),
			"  "+progressBar(s.Percent, progressBarWidth)+fmt.Sprintf(" %3d%%", s.Percent),
			"",
		)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.editing = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.editing = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	mode, err := parseModeFilter(m.filterInputs[filterMode].Value())
	if err != nil {
		return err
	}
	window, err := model.ParseWindow(m.filterInputs[filterWindow].Value())
	if err != nil {
		return err
	}
	difficulty, err := parseDifficultyFilter(m.filterInputs[filterDifficulty].Value())
	if err != nil {
		return err
	}
	user := strings.TrimSpace(m.filterInputs[filterUser].Value())
	if user == "" {
		user = m.cfg.Username
	}
	m.cfg = model.StatsConfig{
		Username:   user,
		Mode:       mode,
		Difficulty: difficulty,
		Window:     window,
	}
	return nil
}

func parseModeFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == model.All {
		return model.All, nil
	}
	mode, err := model.ParseMode(s)
	if err != nil {
		return "", err
	}
	return string(mode), nil
}

func parseDifficultyFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == model.All {
		return model.All, nil
	}
	d, err := model.ParseDifficulty(s)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func modeOptions() []string {
	out := []string{model.All}
	for _, mode := range model.Modes {
		out = append(out, string(mode))
	}
	return out
}

func windowOptions() []string {
	out := make([]string, 0, len(model.Windows))
	for _, w := range model.Windows {
		out = append(out, string(w))
	}
	return out
}

func difficultyOptions() []string {
	out := []string{model.All}
	for _, d := range model.Difficulties {
		out = append(out, string(d))
	}
	return out
}

func cycle(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
