package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuiracer/internal/kv"
	"github.com/verte-zerg/tuiracer/internal/model"
)

type memKV struct {
	values  map[string]string
	failSet bool
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	if m.failSet {
		return errors.New("quota exceeded")
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func sampleResult(user string, wpm float64) model.GameResult {
	return model.GameResult{
		Mode:       model.ModeClassic,
		WPM:        wpm,
		Accuracy:   100,
		Text:       "cat dog",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Completed:  true,
		Difficulty: model.DifficultyEasy,
		Username:   user,
	}
}

func TestAppendPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	backend, err := kv.Open(filepath.Join(t.TempDir(), "tuiracer.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})

	st := Open(ctx, backend, nil)
	if err := st.Append(ctx, sampleResult("alice", 50)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := st.Append(ctx, sampleResult("bob", 60)); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := Open(ctx, backend, nil)
	all := reopened.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}
	if all[0].Username != "alice" || all[1].Username != "bob" {
		t.Fatalf("expected insertion order, got %+v", all)
	}
	if !all[0].Timestamp.Equal(sampleResult("", 0).Timestamp) {
		t.Fatalf("timestamp not preserved: %v", all[0].Timestamp)
	}
}

func TestOpenMissingAndCorruptPayloads(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	if n := Open(ctx, backend, nil).Len(); n != 0 {
		t.Fatalf("expected empty store for missing key, got %d", n)
	}
	for _, payload := range []string{"{broken", `{"mode":"classic"}`, "null", ""} {
		backend.values[ResultsKey] = payload
		st := Open(ctx, backend, nil)
		if n := len(st.All()); n != 0 {
			t.Fatalf("payload %q: expected empty result list, got %d", payload, n)
		}
	}
}

func TestOpenReadsOriginalTimestampFormat(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	backend.values[ResultsKey] = `[{"mode":"lava","wpm":41.2,"accuracy":97.5,"errors":2,"text":"abc","timestamp":"2025-03-01T10:20:30.123Z","completed":false,"difficulty":"hard","username":"zoe"}]`
	all := Open(ctx, backend, nil).All()
	if len(all) != 1 {
		t.Fatalf("expected 1 result, got %d", len(all))
	}
	got := all[0]
	if got.Mode != model.ModeLava || got.Difficulty != model.DifficultyHard || got.Completed {
		t.Fatalf("unexpected decoded result: %+v", got)
	}
	want := time.Date(2025, 3, 1, 10, 20, 30, 123000000, time.UTC)
	if !got.Timestamp.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Timestamp)
	}
}

func TestAppendWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	st := Open(ctx, backend, nil)

	backend.failSet = true
	if err := st.Append(ctx, sampleResult("alice", 10)); err == nil {
		t.Fatalf("expected write error")
	}
	if st.Len() != 1 {
		t.Fatalf("expected in-memory result after failed write, got %d", st.Len())
	}

	backend.failSet = false
	if err := st.Append(ctx, sampleResult("alice", 20)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if n := Open(ctx, backend, nil).Len(); n != 2 {
		t.Fatalf("expected next write to include both results, got %d", n)
	}
}

func TestAppendFillsUsernameAndByUser(t *testing.T) {
	ctx := context.Background()
	st := Open(ctx, newMemKV(), nil)
	_ = st.Append(ctx, sampleResult("", 10))
	_ = st.Append(ctx, sampleResult("alice", 20))
	_ = st.Append(ctx, sampleResult("alice", 30))

	if got := st.ByUser(DefaultUsername); len(got) != 1 {
		t.Fatalf("expected default username to be filled, got %+v", st.All())
	}
	alice := st.ByUser("alice")
	if len(alice) != 2 || alice[0].WPM != 20 || alice[1].WPM != 30 {
		t.Fatalf("unexpected alice results: %+v", alice)
	}
	if got := st.ByUser("nobody"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := Open(ctx, newMemKV(), nil)
	_ = st.Append(ctx, sampleResult("alice", 10))
	all := st.All()
	all[0].WPM = 999
	if st.All()[0].WPM != 10 {
		t.Fatalf("mutating the returned slice must not change the store")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	backend := newMemKV()
	st := Open(ctx, backend, nil)
	_ = st.Append(ctx, sampleResult("alice", 10))
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected empty store after clear")
	}
	if _, ok := backend.values[ResultsKey]; ok {
		t.Fatalf("expected key removed from backend")
	}
}
