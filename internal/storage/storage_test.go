package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmorelli/confab/internal/domain"
	"github.com/jmorelli/confab/internal/storage"
	"github.com/jmorelli/confab/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmpty(t *testing.T) {
	store := storage.NewStore(memory.NewKV())
	state := store.Load(context.Background())

	assert.Empty(t, state.Sessions)
	assert.Equal(t, domain.DefaultSettings(), state.Settings)
	assert.Empty(t, state.OwnerID)
	assert.False(t, state.DarkMode)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(memory.NewKV())

	settings := domain.UserSettings{
		Theme:          "dark",
		AutoSave:       true,
		SoundEnabled:   false,
		CompactMode:    true,
		ShowTimestamps: false,
		AutoScroll:     true,
	}
	sessions := []domain.ConversationSession{
		{
			ID:           "c1",
			Title:        "hi...",
			Preview:      "hello...",
			UpdatedAt:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
			MessageCount: 2,
			Starred:      true,
			OwnerID:      "alice",
		},
	}

	require.NoError(t, store.Save(ctx, storage.KeySettings, settings))
	require.NoError(t, store.Save(ctx, storage.KeySessions, sessions))
	require.NoError(t, store.Save(ctx, storage.KeyOwner, "alice"))
	require.NoError(t, store.Save(ctx, storage.KeyDarkMode, true))

	state := store.Load(ctx)
	assert.Equal(t, settings, state.Settings)
	assert.Equal(t, sessions, state.Sessions)
	assert.Equal(t, "alice", state.OwnerID)
	assert.True(t, state.DarkMode)
}

func TestStore_CorruptFieldIsIsolated(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	store := storage.NewStore(kv)

	require.NoError(t, store.Save(ctx, storage.KeySettings, domain.UserSettings{Theme: "dark", AutoSave: true}))
	require.NoError(t, store.Save(ctx, storage.KeyOwner, "alice"))

	// A corrupt sessions blob must not prevent the other keys from loading.
	require.NoError(t, kv.Set(ctx, storage.KeySessions, []byte(`{{{not json`)))

	state := store.Load(ctx)
	assert.Empty(t, state.Sessions)
	assert.Equal(t, "dark", state.Settings.Theme)
	assert.Equal(t, "alice", state.OwnerID)
}

func TestStore_CorruptSettingsDegradeToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKV()
	store := storage.NewStore(kv)

	require.NoError(t, store.Save(ctx, storage.KeySessions, []domain.ConversationSession{{ID: "c1"}}))
	require.NoError(t, kv.Set(ctx, storage.KeySettings, []byte(`[1,2,3]`)))

	state := store.Load(ctx)
	assert.Equal(t, domain.DefaultSettings(), state.Settings)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, "c1", state.Sessions[0].ID)
}

func TestStore_Erase(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(memory.NewKV())

	require.NoError(t, store.Save(ctx, storage.KeySessions, []domain.ConversationSession{{ID: "c1"}}))
	require.NoError(t, store.Erase(ctx, storage.KeySessions))

	state := store.Load(ctx)
	assert.Empty(t, state.Sessions)
}
