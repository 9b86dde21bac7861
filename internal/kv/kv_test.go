package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetOverwritesAndDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Set(ctx, "k", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "k", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := st.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected overwritten value 2, got %q", got)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete of missing key should succeed: %v", err)
	}
}

func TestJSONRoundTripAndCorruptValue(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SetJSON(ctx, "name", "alice"); err != nil {
		t.Fatalf("set json: %v", err)
	}
	var name string
	if err := st.GetJSON(ctx, "name", &name); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if name != "alice" {
		t.Fatalf("expected alice, got %q", name)
	}

	if err := st.Set(ctx, "broken", "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	var v map[string]any
	if err := st.GetJSON(ctx, "broken", &v); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestKeysSorted(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for _, k := range []string{"b", "a", "c"} {
		if err := st.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
