// Package directory maintains the ordered session directory: one summary
// entry per conversation, most recently created first. Updates happen in
// place and never reorder existing entries.
package directory

import "github.com/jmorelli/confab/internal/domain"

// Directory is an ordered map of conversation id to session summary.
// Not safe for concurrent use; the engine serializes all access.
type Directory struct {
	entries []domain.ConversationSession
	index   map[string]int
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Upsert applies the auto-save rule for one entry. An existing entry is
// updated in place, keeping its position and its user-set Starred and
// Archived flags. A new entry is inserted at the front with both flags
// clear.
func (d *Directory) Upsert(entry domain.ConversationSession) {
	if i, ok := d.index[entry.ID]; ok {
		existing := &d.entries[i]
		existing.Title = entry.Title
		existing.Preview = entry.Preview
		existing.UpdatedAt = entry.UpdatedAt
		existing.MessageCount = entry.MessageCount
		existing.OwnerID = entry.OwnerID
		return
	}

	entry.Starred = false
	entry.Archived = false
	d.entries = append([]domain.ConversationSession{entry}, d.entries...)
	d.reindex()
}

// Get returns a copy of the entry with the given id.
func (d *Directory) Get(id string) (domain.ConversationSession, bool) {
	i, ok := d.index[id]
	if !ok {
		return domain.ConversationSession{}, false
	}
	return d.entries[i], true
}

// Delete removes the entry with the given id. Absent ids are a no-op.
func (d *Directory) Delete(id string) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	d.reindex()
	return true
}

// ToggleStar flips the starred flag on the entry with the given id.
func (d *Directory) ToggleStar(id string) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.entries[i].Starred = !d.entries[i].Starred
	return true
}

// ToggleArchive flips the archived flag on the entry with the given id.
func (d *Directory) ToggleArchive(id string) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.entries[i].Archived = !d.entries[i].Archived
	return true
}

// All returns the entries in directory order.
func (d *Directory) All() []domain.ConversationSession {
	out := make([]domain.ConversationSession, len(d.entries))
	copy(out, d.entries)
	return out
}

// Replace swaps the directory contents, preserving the given order.
// Used to restore persisted state at startup. Entries without an id are
// dropped; on duplicate ids the first occurrence wins.
func (d *Directory) Replace(entries []domain.ConversationSession) {
	d.entries = d.entries[:0]
	d.index = make(map[string]int)
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, dup := d.index[e.ID]; dup {
			continue
		}
		d.index[e.ID] = len(d.entries)
		d.entries = append(d.entries, e)
	}
}

// Clear removes all entries.
func (d *Directory) Clear() {
	d.entries = nil
	d.index = make(map[string]int)
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

func (d *Directory) reindex() {
	d.index = make(map[string]int, len(d.entries))
	for i, e := range d.entries {
		d.index[e.ID] = i
	}
}
