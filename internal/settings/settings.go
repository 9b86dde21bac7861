// Package settings persists the username and customization values.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuiracer/internal/kv"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/obslog"
)

// Storage keys.
const (
	KeyUsername          = "typeracer-username"
	KeySoundEnabled      = "typeracer-sound-enabled"
	KeySoundVolume       = "typeracer-sound-volume"
	KeyAnimationsEnabled = "typeracer-animations-enabled"
	KeyAnimationSpeed    = "typeracer-animation-speed"
	KeyAccentColor       = "typeracer-accent-color"
)

// Short names accepted by Set.
const (
	NameSoundEnabled      = "sound"
	NameSoundVolume       = "volume"
	NameAnimationsEnabled = "animations"
	NameAnimationSpeed    = "animation-speed"
	NameAccentColor       = "accent"
)

var settingKeys = map[string]string{
	NameSoundEnabled:      KeySoundEnabled,
	NameSoundVolume:       KeySoundVolume,
	NameAnimationsEnabled: KeyAnimationsEnabled,
	NameAnimationSpeed:    KeyAnimationSpeed,
	NameAccentColor:       KeyAccentColor,
}

// AccentColors maps accent names to terminal colors.
var AccentColors = map[string]string{
	"blue":   "#3B82F6",
	"green":  "#10B981",
	"purple": "#8B5CF6",
	"pink":   "#EC4899",
	"orange": "#F97316",
	"red":    "#EF4444",
}

// AnimationSpeeds are the allowed animation speed multipliers.
var AnimationSpeeds = []float64{0.5, 1, 1.5, 2}

// ErrInvalidUsername is returned for blank usernames.
var ErrInvalidUsername = errors.New("username must not be empty")

// KV is the key-value backend. Values are JSON encoded.
type KV interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any) error
	Keys(ctx context.Context) ([]string, error)
}

// Defaults returns the settings used when nothing is stored.
func Defaults() model.Settings {
	return model.Settings{
		SoundEnabled:      true,
		SoundVolume:       80,
		AnimationsEnabled: true,
		AnimationSpeed:    1,
		AccentColor:       "blue",
	}
}

// Manager reads and writes settings keys.
type Manager struct {
	kv  KV
	log *zap.Logger
}

// New constructs a Manager.
func New(backend KV, log *zap.Logger) *Manager {
	return &Manager{kv: backend, log: obslog.OrNop(log)}
}

// Username returns the stored username, or "" when unset or unreadable.
func (m *Manager) Username(ctx context.Context) string {
	var name string
	if !m.read(ctx, KeyUsername, &name) {
		return ""
	}
	return strings.TrimSpace(name)
}

// SetUsername stores a trimmed, non-empty username.
func (m *Manager) SetUsername(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidUsername
	}
	return m.write(ctx, KeyUsername, name)
}

// Load returns the stored settings. Missing or invalid values fall back to
// their defaults individually.
func (m *Manager) Load(ctx context.Context) model.Settings {
	out := Defaults()

	var b bool
	if m.read(ctx, KeySoundEnabled, &b) {
		out.SoundEnabled = b
	}
	var volume int
	if m.read(ctx, KeySoundVolume, &volume) && volume >= 0 && volume <= 100 {
		out.SoundVolume = volume
	}
	if m.read(ctx, KeyAnimationsEnabled, &b) {
		out.AnimationsEnabled = b
	}
	var speed float64
	if m.read(ctx, KeyAnimationSpeed, &speed) && validSpeed(speed) {
		out.AnimationSpeed = speed
	}
	var color string
	if m.read(ctx, KeyAccentColor, &color) {
		if _, ok := AccentColors[color]; ok {
			out.AccentColor = color
		}
	}
	return out
}

// Set parses value for the named setting and stores it.
func (m *Manager) Set(ctx context.Context, name, value string) error {
	value = strings.TrimSpace(value)
	switch name {
	case NameSoundEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s value %q (use true/false)", name, value)
		}
		return m.write(ctx, KeySoundEnabled, b)
	case NameSoundVolume:
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 || v > 100 {
			return fmt.Errorf("invalid %s value %q (use 0-100)", name, value)
		}
		return m.write(ctx, KeySoundVolume, v)
	case NameAnimationsEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s value %q (use true/false)", name, value)
		}
		return m.write(ctx, KeyAnimationsEnabled, b)
	case NameAnimationSpeed:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || !validSpeed(v) {
			return fmt.Errorf("invalid %s value %q (use 0.5, 1, 1.5 or 2)", name, value)
		}
		return m.write(ctx, KeyAnimationSpeed, v)
	case NameAccentColor:
		if _, ok := AccentColors[value]; !ok {
			return fmt.Errorf("invalid %s value %q (use %s)", name, value, strings.Join(AccentNames(), ", "))
		}
		return m.write(ctx, KeyAccentColor, value)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
}

// Customized reports, per setting name, whether a value is stored for it.
// Names without a stored value are shown with their defaults.
func (m *Manager) Customized(ctx context.Context) (map[string]bool, error) {
	keys, err := m.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	stored := make(map[string]bool, len(keys))
	for _, k := range keys {
		stored[k] = true
	}
	out := make(map[string]bool, len(settingKeys))
	for name, key := range settingKeys {
		out[name] = stored[key]
	}
	return out, nil
}

// Names lists the settings accepted by Set.
func Names() []string {
	return []string{NameSoundEnabled, NameSoundVolume, NameAnimationsEnabled, NameAnimationSpeed, NameAccentColor}
}

// AccentNames lists accent color names in sorted order.
func AccentNames() []string {
	names := make([]string, 0, len(AccentColors))
	for name := range AccentColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpeedLabel names an animation speed.
func SpeedLabel(speed float64) string {
	switch {
	case speed <= 0.5:
		return "Slow"
	case speed == 1:
		return "Normal"
	default:
		return "Fast"
	}
}

func validSpeed(v float64) bool {
	for _, s := range AnimationSpeeds {
		if v == s {
			return true
		}
	}
	return false
}

func (m *Manager) read(ctx context.Context, key string, v any) bool {
	err := m.kv.GetJSON(ctx, key, v)
	if errors.Is(err, kv.ErrNotFound) {
		return false
	}
	if err != nil {
		m.log.Warn("ignoring unreadable setting", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (m *Manager) write(ctx context.Context, key string, v any) error {
	if err := m.kv.SetJSON(ctx, key, v); err != nil {
		m.log.Warn("failed to write setting", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
