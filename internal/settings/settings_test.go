package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/tuiracer/internal/kv"
)

func openTestKV(t *testing.T) *kv.Store {
	t.Helper()
	st, err := kv.Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func raw(t *testing.T, st *kv.Store, key string) string {
	t.Helper()
	v, err := st.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get %s: %v", key, err)
	}
	return v
}

func TestUsernameRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := openTestKV(t)
	m := New(backend, nil)
	if got := m.Username(ctx); got != "" {
		t.Fatalf("expected empty username, got %q", got)
	}
	if err := m.SetUsername(ctx, "  alice "); err != nil {
		t.Fatalf("set username: %v", err)
	}
	if got := raw(t, backend, KeyUsername); got != `"alice"` {
		t.Fatalf("expected JSON string payload, got %q", got)
	}
	if got := m.Username(ctx); got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
	if err := m.SetUsername(ctx, "   "); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestLoadDefaultsAndInvalidValues(t *testing.T) {
	ctx := context.Background()
	backend := openTestKV(t)
	for key, value := range map[string]string{
		KeySoundEnabled:   "false",
		KeySoundVolume:    "250",
		KeyAnimationSpeed: "2",
		KeyAccentColor:    `"teal"`,
		KeyUsername:       "{oops",
	} {
		if err := backend.Set(ctx, key, value); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	m := New(backend, nil)
	got := m.Load(ctx)
	if got.SoundEnabled {
		t.Fatalf("expected sound disabled")
	}
	if got.SoundVolume != 80 {
		t.Fatalf("expected default volume for out-of-range value, got %d", got.SoundVolume)
	}
	if got.AnimationSpeed != 2 {
		t.Fatalf("expected speed 2, got %v", got.AnimationSpeed)
	}
	if got.AccentColor != "blue" {
		t.Fatalf("expected default accent for unknown color, got %q", got.AccentColor)
	}
	if !got.AnimationsEnabled {
		t.Fatalf("expected default animations enabled")
	}
	if name := m.Username(ctx); name != "" {
		t.Fatalf("corrupt username should read as empty, got %q", name)
	}
}

func TestSetValidation(t *testing.T) {
	ctx := context.Background()
	backend := openTestKV(t)
	m := New(backend, nil)

	valid := []struct{ name, value string }{
		{NameSoundEnabled, "false"},
		{NameSoundVolume, "35"},
		{NameAnimationsEnabled, "true"},
		{NameAnimationSpeed, "1.5"},
		{NameAccentColor, "pink"},
	}
	for _, tc := range valid {
		if err := m.Set(ctx, tc.name, tc.value); err != nil {
			t.Fatalf("set %s=%s: %v", tc.name, tc.value, err)
		}
	}
	if raw(t, backend, KeySoundVolume) != "35" || raw(t, backend, KeyAccentColor) != `"pink"` || raw(t, backend, KeyAnimationSpeed) != "1.5" {
		t.Fatalf("unexpected stored values")
	}

	invalid := [][2]string{
		{NameSoundEnabled, "maybe"},
		{NameSoundVolume, "101"},
		{NameAnimationSpeed, "3"},
		{NameAccentColor, "teal"},
		{"theme", "dark"},
	}
	for _, tc := range invalid {
		if err := m.Set(ctx, tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for %s=%s", tc[0], tc[1])
		}
	}
}

func TestCustomized(t *testing.T) {
	ctx := context.Background()
	backend := openTestKV(t)
	m := New(backend, nil)
	if err := m.SetUsername(ctx, "alice"); err != nil {
		t.Fatalf("set username: %v", err)
	}
	if err := m.Set(ctx, NameAccentColor, "red"); err != nil {
		t.Fatalf("set accent: %v", err)
	}
	got, err := m.Customized(ctx)
	if err != nil {
		t.Fatalf("customized: %v", err)
	}
	if len(got) != len(Names()) {
		t.Fatalf("expected an entry per setting, got %v", got)
	}
	if !got[NameAccentColor] || got[NameSoundVolume] {
		t.Fatalf("unexpected customized set: %v", got)
	}
}

func TestSpeedLabel(t *testing.T) {
	if SpeedLabel(0.5) != "Slow" || SpeedLabel(1) != "Normal" || SpeedLabel(2) != "Fast" {
		t.Fatalf("unexpected speed labels")
	}
}
