// Package main provides the CLI entrypoint for tuiracer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiracer/internal/config"
	"github.com/verte-zerg/tuiracer/internal/export"
	"github.com/verte-zerg/tuiracer/internal/game"
	"github.com/verte-zerg/tuiracer/internal/kv"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/obslog"
	"github.com/verte-zerg/tuiracer/internal/settings"
	"github.com/verte-zerg/tuiracer/internal/stats"
	"github.com/verte-zerg/tuiracer/internal/statsui"
	"github.com/verte-zerg/tuiracer/internal/store"
	"github.com/verte-zerg/tuiracer/internal/textsample"
	"github.com/verte-zerg/tuiracer/internal/tui"
)

const (
	defaultMode       = string(model.ModeClassic)
	defaultDifficulty = string(model.DifficultyMedium)
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
)

var (
	playMode       string
	playDifficulty string
	playUser       string
	playTextsDir   string

	statsUser   string
	statsMode   string
	statsWindow string
	statsPlain  bool

	boardMode       string
	boardWindow     string
	boardDifficulty string
	boardUser       string

	achievementsUser string

	exportFormat string
	exportUser   string

	resetConfirm bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiracer",
		Short:         "Terminal typing race",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "game mode: classic, lava, invisible, speed")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "text difficulty: easy, medium, hard")
	rootCmd.Flags().StringVar(&playUser, "user", "", "player name for this run (default: stored username)")
	rootCmd.Flags().StringVar(&playTextsDir, "texts-dir", config.DefaultTextsDir(), "directory with <difficulty>.txt prompt files")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newAchievementsCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// app holds the resources shared by every command.
type app struct {
	cfg      config.FileConfig
	log      *zap.Logger
	kv       *kv.Store
	results  *store.Store
	settings *settings.Manager

	closeLog func()
}

func openApp(ctx context.Context) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := obslog.New(obslog.Options{
		Level:  config.StringOr(fileCfg.Log.Level, defaultLogLevel),
		Format: config.StringOr(fileCfg.Log.Format, defaultLogFormat),
		File:   config.StringOr(fileCfg.Log.File, config.DefaultLogPath()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	dbPath := config.DefaultDBPath()
	kvStore, err := kv.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	logger.Debug("storage opened", zap.String("path", dbPath))

	return &app{
		cfg:      fileCfg,
		log:      logger,
		kv:       kvStore,
		results:  store.Open(ctx, kvStore, logger),
		settings: settings.New(kvStore, logger),
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	if cerr := a.kv.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
	a.closeLog()
}

func (a *app) username(ctx context.Context, override string) string {
	if name := strings.TrimSpace(override); name != "" {
		return name
	}
	return a.settings.Username(ctx)
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	applyStringConfig(cmd, "mode", &playMode, a.cfg.Game.Mode)
	applyStringConfig(cmd, "difficulty", &playDifficulty, a.cfg.Game.Difficulty)
	applyStringConfig(cmd, "texts-dir", &playTextsDir, a.cfg.Game.TextsDir)

	cfg, err := buildPlayConfig(playMode, playDifficulty, a.username(ctx, playUser), playTextsDir)
	if err != nil {
		return err
	}

	texts := textsample.New()
	replaced, err := texts.LoadDir(cfg.TextsDir)
	if err != nil {
		return fmt.Errorf("failed to load texts: %w", err)
	}
	for _, d := range replaced {
		a.log.Info("using custom texts", zap.String("difficulty", string(d)), zap.Int("count", len(texts.Samples(d))))
	}

	engine := game.New(game.Options{
		Mode:       cfg.Mode,
		Difficulty: cfg.Difficulty,
		Username:   cfg.Username,
		Texts:      texts,
		Recorder:   a.results,
		Logger:     a.log,
	})
	prefs := a.settings.Load(ctx)
	m := tui.NewModel(engine, a.settings, prefs, a.log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if r, ok := engine.Result(); ok {
		logErrf("Last game: %.1f WPM, %.1f%% accuracy (%s, %s)\n", r.WPM, r.Accuracy, r.Mode, r.Difficulty)
	}
	return nil
}

func buildPlayConfig(mode, difficulty, username, textsDir string) (model.Config, error) {
	m, err := model.ParseMode(mode)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --mode: %w", err)
	}
	d, err := model.ParseDifficulty(difficulty)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --difficulty: %w", err)
	}
	return model.Config{
		Mode:       m,
		Difficulty: d,
		Username:   username,
		TextsDir:   textsDir,
	}, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse leaderboard, stats, and achievements",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "player (default: stored username)")
	cmd.Flags().StringVar(&statsMode, "mode", model.All, "mode filter or 'all'")
	cmd.Flags().StringVar(&statsWindow, "window", model.All, "time window: all, day, week, month")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, err := buildStatsConfig(a.username(ctx, statsUser), statsMode, statsWindow, model.All)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if statsPlain || !stats.IsTerminal(out) {
		report := stats.BuildReport(a.results, cfg, time.Now())
		if err := stats.RenderReport(out, report, cfg); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	m := statsui.NewModel(a.results, cfg, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig(username, mode, window, difficulty string) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Username: statsUsername(username), Mode: model.All, Difficulty: model.All}
	if v := strings.ToLower(strings.TrimSpace(mode)); v != "" && v != model.All {
		m, err := model.ParseMode(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid --mode: %w", err)
		}
		cfg.Mode = string(m)
	}
	if v := strings.ToLower(strings.TrimSpace(difficulty)); v != "" && v != model.All {
		d, err := model.ParseDifficulty(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid --difficulty: %w", err)
		}
		cfg.Difficulty = string(d)
	}
	w, err := model.ParseWindow(window)
	if err != nil {
		return cfg, fmt.Errorf("invalid --window: %w", err)
	}
	cfg.Window = w
	return cfg, nil
}

// statsUsername maps an unset player to the name results are stored under.
func statsUsername(name string) string {
	if name == "" {
		return store.DefaultUsername
	}
	return name
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top results",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardMode, "mode", defaultMode, "mode filter or 'all'")
	cmd.Flags().StringVar(&boardWindow, "window", model.All, "time window: all, day, week, month")
	cmd.Flags().StringVar(&boardDifficulty, "difficulty", model.All, "difficulty filter or 'all'")
	cmd.Flags().StringVar(&boardUser, "user", "", "player to highlight (default: stored username)")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, err := buildStatsConfig(a.username(ctx, boardUser), boardMode, boardWindow, boardDifficulty)
	if err != nil {
		return err
	}
	entries := stats.Leaderboard(a.results.All(), cfg, time.Now())
	if err := stats.RenderLeaderboard(cmd.OutOrStdout(), entries, cfg.Username); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Print achievement progress",
		Args:  cobra.NoArgs,
		RunE:  runAchievementsCmd,
	}
	cmd.Flags().StringVar(&achievementsUser, "user", "", "player (default: stored username)")
	return cmd
}

func runAchievementsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	username := statsUsername(a.username(ctx, achievementsUser))
	statuses := stats.EvaluateAchievements(a.results.ByUser(username))
	if err := stats.RenderAchievements(cmd.OutOrStdout(), statuses); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user [NAME]",
		Short: "Show or set the player name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUserCmd,
	}
}

func runUserCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		name := a.settings.Username(ctx)
		if name == "" {
			logErrln("No username set. Set one with: tuiracer user <name>")
			return nil
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := a.settings.SetUsername(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to set username: %w", err)
	}
	return nil
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [KEY VALUE]",
		Short: "Show or change customization settings",
		Long: fmt.Sprintf("Show all settings, or set one of: %s.\nAccent colors: %s.",
			strings.Join(settings.Names(), ", "), strings.Join(settings.AccentNames(), ", ")),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("expected no arguments or KEY VALUE")
			}
			return nil
		},
		RunE: runSettingsCmd,
	}
}

func runSettingsCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 2 {
		if err := a.settings.Set(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}
	}
	customized, err := a.settings.Customized(ctx)
	if err != nil {
		return err
	}
	if err := writeSettings(cmd.OutOrStdout(), a.settings.Load(ctx), customized); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeSettings(w io.Writer, s model.Settings, customized map[string]bool) error {
	values := map[string]string{
		settings.NameSoundEnabled:      fmt.Sprintf("%t", s.SoundEnabled),
		settings.NameSoundVolume:       fmt.Sprintf("%d", s.SoundVolume),
		settings.NameAnimationsEnabled: fmt.Sprintf("%t", s.AnimationsEnabled),
		settings.NameAnimationSpeed:    fmt.Sprintf("%g (%s)", s.AnimationSpeed, settings.SpeedLabel(s.AnimationSpeed)),
		settings.NameAccentColor:       s.AccentColor,
	}
	for _, name := range settings.Names() {
		line := fmt.Sprintf("%s = %s", name, values[name])
		if !customized[name] {
			line += " (default)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write stored results to stdout",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", string(export.FormatJSON), "output format: json, yaml")
	cmd.Flags().StringVar(&exportUser, "user", "", "only export this player's results")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return fmt.Errorf("invalid --format: %w", err)
	}
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	results := a.results.All()
	if user := strings.TrimSpace(exportUser); user != "" {
		results = a.results.ByUser(user)
	}
	return export.Write(cmd.OutOrStdout(), results, format)
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored results",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetConfirm, "yes", false, "confirm deletion")
	return cmd
}

func runResetCmd(_ *cobra.Command, _ []string) error {
	if !resetConfirm {
		return errors.New("refusing to delete results without --yes")
	}
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n := a.results.Len()
	if err := a.results.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	logErrf("Deleted %d results\n", n)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiracer configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q          # classic, lava, invisible, speed
# difficulty = %q     # easy, medium, hard
# texts-dir = %q      # Directory with easy.txt, medium.txt, hard.txt (one prompt per line)

[log]
# level = %q          # debug, info, warn, error (env %s overrides)
# format = %q      # console or json
# file = %q           # Empty disables logging
`,
		defaultMode,
		defaultDifficulty,
		config.DefaultTextsDir(),
		defaultLogLevel,
		obslog.EnvLevel,
		defaultLogFormat,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
