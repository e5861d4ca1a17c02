package engine

import (
	"fmt"
	"time"

	"github.com/jmorelli/confab/internal/domain"
)

const snapshotVersion = 1

// Snapshot is the exportable view of the active conversation. Building
// one is a pure read; nothing is mutated.
type Snapshot struct {
	ConversationID string              `json:"conversation_id"`
	OwnerID        string              `json:"owner_id"`
	Messages       []domain.Message    `json:"messages"`
	Settings       domain.UserSettings `json:"settings"`
	ExportedAt     time.Time           `json:"exported_at"`
	Version        int                 `json:"version"`
}

// ExportSnapshot captures the active conversation for download.
func (e *Engine) ExportSnapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		ConversationID: e.convID,
		OwnerID:        e.ownerID,
		Messages:       e.log.Messages(),
		Settings:       e.settings,
		ExportedAt:     time.Now().UTC(),
		Version:        snapshotVersion,
	}
}

// Filename derives the deterministic download name for a snapshot.
func (s Snapshot) Filename() string {
	id := s.ConversationID
	if id == "" {
		id = "draft"
	}
	return fmt.Sprintf("confab-%s-%s.json", id, s.ExportedAt.Format("20060102T150405Z"))
}
