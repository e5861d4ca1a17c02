package directory

import (
	"testing"
	"time"

	"github.com/jmorelli/confab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, title string) domain.ConversationSession {
	return domain.ConversationSession{
		ID:           id,
		Title:        title,
		Preview:      title,
		UpdatedAt:    time.Now(),
		MessageCount: 1,
		OwnerID:      "alice",
	}
}

func TestDirectory_UpsertInsertsAtFront(t *testing.T) {
	d := New()
	d.Upsert(entry("c1", "first"))
	d.Upsert(entry("c2", "second"))

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c2", all[0].ID)
	assert.Equal(t, "c1", all[1].ID)
}

func TestDirectory_UpsertUpdatesInPlace(t *testing.T) {
	d := New()
	d.Upsert(entry("c1", "first"))
	d.Upsert(entry("c2", "second"))

	// Updating c1 must not move it back to the front.
	updated := entry("c1", "first, updated")
	updated.MessageCount = 4
	d.Upsert(updated)

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c2", all[0].ID)
	assert.Equal(t, "c1", all[1].ID)
	assert.Equal(t, "first, updated", all[1].Title)
	assert.Equal(t, 4, all[1].MessageCount)
}

func TestDirectory_UpsertPreservesFlags(t *testing.T) {
	d := New()
	d.Upsert(entry("c1", "first"))
	require.True(t, d.ToggleStar("c1"))
	require.True(t, d.ToggleArchive("c1"))

	fresh := entry("c1", "recomputed")
	fresh.Starred = false
	fresh.Archived = false
	d.Upsert(fresh)

	got, ok := d.Get("c1")
	require.True(t, ok)
	assert.True(t, got.Starred)
	assert.True(t, got.Archived)
	assert.Equal(t, "recomputed", got.Title)
}

func TestDirectory_UpsertIdempotent(t *testing.T) {
	d := New()
	e := entry("c1", "same")
	d.Upsert(e)
	d.Upsert(e)

	assert.Equal(t, 1, d.Len())
}

func TestDirectory_NewEntryFlagsClear(t *testing.T) {
	d := New()
	e := entry("c1", "first")
	e.Starred = true
	e.Archived = true
	d.Upsert(e)

	got, _ := d.Get("c1")
	assert.False(t, got.Starred)
	assert.False(t, got.Archived)
}

func TestDirectory_Delete(t *testing.T) {
	d := New()
	d.Upsert(entry("c1", "a"))
	d.Upsert(entry("c2", "b"))
	d.Upsert(entry("c3", "c"))

	assert.True(t, d.Delete("c2"))
	assert.False(t, d.Delete("c2"))

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c3", all[0].ID)
	assert.Equal(t, "c1", all[1].ID)
}

func TestDirectory_TogglesAbsentID(t *testing.T) {
	d := New()
	assert.False(t, d.ToggleStar("missing"))
	assert.False(t, d.ToggleArchive("missing"))
}

func TestDirectory_Replace(t *testing.T) {
	d := New()
	d.Upsert(entry("old", "stale"))

	d.Replace([]domain.ConversationSession{
		entry("c1", "a"),
		{ID: "", Title: "no id"},
		entry("c2", "b"),
		entry("c1", "duplicate"),
	})

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "c1", all[0].ID)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "c2", all[1].ID)
}

func TestDirectory_Clear(t *testing.T) {
	d := New()
	d.Upsert(entry("c1", "a"))
	d.Clear()

	assert.Equal(t, 0, d.Len())
	_, ok := d.Get("c1")
	assert.False(t, ok)
}
