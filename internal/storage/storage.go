// Package storage is the persistence adapter: a durable key/value store
// holding the session directory, user settings and last-used identity.
// Values are JSON blobs; each key loads independently so one corrupt
// entry never poisons the others.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmorelli/confab/internal/domain"
	"github.com/rs/zerolog/log"
)

// Persisted state keys.
const (
	KeySessions = "chatSessions"
	KeySettings = "userSettings"
	KeyOwner    = "userId"
	KeyDarkMode = "darkMode"
)

// KV is the minimal durable key/value contract a storage driver provides.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// State is everything the engine restores at startup.
type State struct {
	Sessions []domain.ConversationSession
	Settings domain.UserSettings
	OwnerID  string
	DarkMode bool
}

// Store wraps a KV driver with the JSON codec and per-field load
// tolerance.
type Store struct {
	kv KV
}

// NewStore creates a store over the given driver.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load reads all persisted state. Absent or malformed entries degrade to
// defaults per field; failures are logged, never returned.
func (s *Store) Load(ctx context.Context) State {
	state := State{Settings: domain.DefaultSettings()}

	loadField(ctx, s.kv, KeySessions, &state.Sessions)
	loadField(ctx, s.kv, KeySettings, &state.Settings)
	loadField(ctx, s.kv, KeyOwner, &state.OwnerID)
	loadField(ctx, s.kv, KeyDarkMode, &state.DarkMode)

	return state
}

// Save serializes the value under the given key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Erase removes the value under the given key.
func (s *Store) Erase(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to erase %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying driver.
func (s *Store) Close() error {
	return s.kv.Close()
}

// loadField decodes one key into dst, leaving dst untouched on any
// failure so the field keeps its default.
func loadField[T any](ctx context.Context, kv KV, key string, dst *T) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read persisted state, using default")
		return
	}
	if !ok {
		return
	}

	decoded := *dst
	if err := json.Unmarshal(data, &decoded); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("persisted state is malformed, using default")
		return
	}
	*dst = decoded
}
