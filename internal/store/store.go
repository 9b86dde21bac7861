// Package store keeps the append-only log of game results.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/tuiracer/internal/kv"
	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/obslog"
)

// ResultsKey is the key holding the JSON array of results.
const ResultsKey = "typeracer-results"

// DefaultUsername is recorded when a result arrives without a username.
const DefaultUsername = "player"

// KV is the key-value backend the log is persisted to.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store holds every result in insertion order. The in-memory list is
// authoritative for the process lifetime; each append rewrites the full
// list to the backend.
type Store struct {
	kv      KV
	log     *zap.Logger
	results []model.GameResult
}

// Open loads the stored log. Missing or corrupt payloads load as empty.
func Open(ctx context.Context, backend KV, log *zap.Logger) *Store {
	s := &Store{kv: backend, log: obslog.OrNop(log)}
	s.results = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []model.GameResult {
	raw, err := s.kv.Get(ctx, ResultsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to read results; starting empty", zap.Error(err))
		return nil
	}
	results, err := decodeResults(raw)
	if err != nil {
		s.log.Warn("stored results are corrupt; treating as empty", zap.Error(err))
		return nil
	}
	return results
}

func decodeResults(raw string) ([]model.GameResult, error) {
	var results []model.GameResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Append adds result to the log and persists the full list. A persistence
// error is logged and returned, but the result stays in memory and is
// written with the next successful append.
func (s *Store) Append(ctx context.Context, result model.GameResult) error {
	if result.Username == "" {
		result.Username = DefaultUsername
	}
	s.results = append(s.results, result)
	if err := s.persist(ctx); err != nil {
		s.log.Warn("failed to persist results",
			zap.Int("count", len(s.results)),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	list := s.results
	if list == nil {
		list = []model.GameResult{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := s.kv.Set(ctx, ResultsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// All returns a copy of every result in insertion order.
func (s *Store) All() []model.GameResult {
	out := make([]model.GameResult, len(s.results))
	copy(out, s.results)
	return out
}

// ByUser returns the results recorded for username, in insertion order.
func (s *Store) ByUser(username string) []model.GameResult {
	out := make([]model.GameResult, 0)
	for _, r := range s.results {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out
}

// Len reports the number of stored results.
func (s *Store) Len() int {
	return len(s.results)
}

// Clear removes every stored result.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ResultsKey); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	s.results = nil
	return nil
}
