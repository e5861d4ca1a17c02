// Package engine orchestrates the conversation session: it owns the
// message log and the session directory, drives the backend client, and
// triggers persistence writes. It is the sole writer of both stores.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jmorelli/confab/internal/backend"
	"github.com/jmorelli/confab/internal/chatlog"
	"github.com/jmorelli/confab/internal/directory"
	"github.com/jmorelli/confab/internal/domain"
	"github.com/jmorelli/confab/internal/query"
	"github.com/jmorelli/confab/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	titleMaxLen   = 50
	previewMaxLen = 100

	// titlePlaceholder names a conversation with no user message yet.
	titlePlaceholder = "New Chat"

	// answerFallback replaces a missing answer field in an otherwise
	// successful backend response.
	answerFallback = "The assistant returned an empty answer."

	// failureNotice is appended as a system message when a backend call
	// fails.
	failureNotice = "Something went wrong while contacting the assistant. Please try again."
)

// Backend abstracts the answer-generation endpoint.
type Backend interface {
	Send(ctx context.Context, ownerID, content string) (*backend.Reply, error)
}

// Engine is the session orchestrator. All entry points are serialized by
// an internal mutex; the mutex is released across the backend call, and
// a second send or regenerate arriving while one is in flight is
// rejected with domain.ErrBusy.
type Engine struct {
	mu      sync.Mutex
	log     *chatlog.Log
	dir     *directory.Directory
	store   *storage.Store
	backend Backend

	convID   string
	ownerID  string
	settings domain.UserSettings
	darkMode bool
	sending  bool
}

// New creates an engine with default settings and empty state.
func New(store *storage.Store, b Backend) *Engine {
	return &Engine{
		log:      chatlog.New(),
		dir:      directory.New(),
		store:    store,
		backend:  b,
		settings: domain.DefaultSettings(),
	}
}

// Restore loads persisted state. Called once at startup, before the
// engine accepts intents.
func (e *Engine) Restore(ctx context.Context) {
	state := e.store.Load(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.dir.Replace(state.Sessions)
	e.settings = state.Settings
	e.ownerID = state.OwnerID
	e.darkMode = state.DarkMode
}

// SendMessage appends the user message, calls the backend, and appends
// the assistant answer or a system failure notice. Validation failures
// return a sentinel error without mutating any state; backend failures
// are reported in-band and return nil.
func (e *Engine) SendMessage(ctx context.Context, content string) error {
	e.mu.Lock()
	content = strings.TrimSpace(content)
	if e.ownerID == "" {
		e.mu.Unlock()
		return domain.ErrNoOwner
	}
	if content == "" {
		e.mu.Unlock()
		return domain.ErrEmptyMessage
	}
	if e.sending {
		e.mu.Unlock()
		return domain.ErrBusy
	}

	// Optimistic append before the network round trip.
	if _, err := e.log.Append(domain.RoleUser, content); err != nil {
		e.mu.Unlock()
		return err
	}
	e.recomputeSession(ctx)
	e.sending = true
	owner := e.ownerID
	e.mu.Unlock()

	return e.completeSend(ctx, owner, content)
}

// Regenerate re-sends the most recent user message. No new user message
// is appended; only an assistant or system message is produced. A log
// with no user message is a no-op.
func (e *Engine) Regenerate(ctx context.Context) error {
	e.mu.Lock()
	if e.ownerID == "" {
		e.mu.Unlock()
		return domain.ErrNoOwner
	}
	content, ok := e.log.LastUserContent()
	if !ok {
		e.mu.Unlock()
		return nil
	}
	if e.sending {
		e.mu.Unlock()
		return domain.ErrBusy
	}
	e.sending = true
	owner := e.ownerID
	e.mu.Unlock()

	return e.completeSend(ctx, owner, content)
}

// completeSend performs the backend call and the success/failure
// transition. The caller must have set sending under the lock.
func (e *Engine) completeSend(ctx context.Context, owner, content string) error {
	reply, err := e.backend.Send(ctx, owner, content)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sending = false

	if err != nil {
		log.Error().Err(err).Msg("backend call failed")
		if _, appendErr := e.log.Append(domain.RoleSystem, failureNotice); appendErr != nil {
			log.Error().Err(appendErr).Msg("failed to record failure notice")
		}
		e.recomputeSession(ctx)
		return nil
	}

	// The backend owns conversation identity; whatever it returns wins.
	if reply.ConversationID != "" {
		e.convID = reply.ConversationID
	}

	answer := reply.Answer
	if answer == "" {
		answer = answerFallback
	}
	if _, err := e.log.Append(domain.RoleAssistant, answer); err != nil {
		log.Error().Err(err).Msg("failed to record assistant message")
	}
	e.recomputeSession(ctx)
	return nil
}

// StartNew clears the active message log and conversation identity. The
// previous conversation keeps its directory entry.
func (e *Engine) StartNew() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Reset()
	e.convID = ""
}

// DeleteSession removes a session from the directory. Deleting the
// active conversation also clears the message log and identity.
func (e *Engine) DeleteSession(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dir.Delete(id) {
		return
	}
	if id == e.convID {
		e.log.Reset()
		e.convID = ""
	}
	e.persistDirectory(ctx)
}

// ToggleStarSession flips the starred flag on a directory entry.
func (e *Engine) ToggleStarSession(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dir.ToggleStar(id) {
		e.persistDirectory(ctx)
	}
}

// ToggleArchiveSession flips the archived flag on a directory entry.
func (e *Engine) ToggleArchiveSession(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dir.ToggleArchive(id) {
		e.persistDirectory(ctx)
	}
}

// ToggleStarMessage flips the starred flag on a message in the active
// log.
func (e *Engine) ToggleStarMessage(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.log.ToggleStar(id) {
		e.recomputeSession(ctx)
	}
}

// ClearAll empties the message log and the session directory and erases
// the persisted directory state. Settings and owner identity survive.
func (e *Engine) ClearAll(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log.Reset()
	e.dir.Clear()
	e.convID = ""
	if err := e.store.Erase(ctx, storage.KeySessions); err != nil {
		log.Error().Err(err).Msg("failed to erase persisted sessions")
	}
}

// SetOwner records the owner identity and persists it.
func (e *Engine) SetOwner(ctx context.Context, ownerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ownerID = strings.TrimSpace(ownerID)
	if err := e.store.Save(ctx, storage.KeyOwner, e.ownerID); err != nil {
		log.Error().Err(err).Msg("failed to persist owner identity")
	}
}

// Owner returns the current owner identity.
func (e *Engine) Owner() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ownerID
}

// Settings returns the current user settings.
func (e *Engine) Settings() domain.UserSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings replaces the settings record and persists it.
func (e *Engine) UpdateSettings(ctx context.Context, settings domain.UserSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings = settings
	if err := e.store.Save(ctx, storage.KeySettings, settings); err != nil {
		log.Error().Err(err).Msg("failed to persist settings")
	}
}

// DarkMode returns the theme flag.
func (e *Engine) DarkMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.darkMode
}

// SetDarkMode records and persists the theme flag.
func (e *Engine) SetDarkMode(ctx context.Context, dark bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.darkMode = dark
	if err := e.store.Save(ctx, storage.KeyDarkMode, dark); err != nil {
		log.Error().Err(err).Msg("failed to persist theme flag")
	}
}

// Messages returns the active conversation's messages in order.
func (e *Engine) Messages() []domain.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Messages()
}

// ConversationID returns the active conversation identity, empty for a
// not-yet-started conversation.
func (e *Engine) ConversationID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.convID
}

// Sessions returns the session directory in order.
func (e *Engine) Sessions() []domain.ConversationSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dir.All()
}

// Search filters the directory for the directory view.
func (e *Engine) Search(q string, starredOnly bool) []domain.ConversationSession {
	e.mu.Lock()
	sessions := e.dir.All()
	e.mu.Unlock()
	return query.Filter(sessions, q, starredOnly)
}

// recomputeSession derives the directory entry for the active
// conversation and persists the directory. Runs after every message-log
// mutation. Caller holds the lock.
func (e *Engine) recomputeSession(ctx context.Context) {
	if !e.settings.AutoSave || e.convID == "" || e.ownerID == "" || e.log.Len() == 0 {
		return
	}

	title := titlePlaceholder
	if first, ok := e.log.FirstUserContent(); ok {
		title = truncate(first, titleMaxLen)
	}

	preview := ""
	if last, ok := e.log.Last(); ok {
		preview = truncate(last.Content, previewMaxLen)
	}

	e.dir.Upsert(domain.ConversationSession{
		ID:           e.convID,
		Title:        title,
		Preview:      preview,
		UpdatedAt:    time.Now(),
		MessageCount: e.log.Len(),
		OwnerID:      e.ownerID,
	})
	e.persistDirectory(ctx)
}

// persistDirectory writes the directory when it is non-empty. An empty
// directory is never saved as an empty set; clearing stored state goes
// through an explicit erase. Caller holds the lock.
func (e *Engine) persistDirectory(ctx context.Context) {
	if e.dir.Len() == 0 {
		if err := e.store.Erase(ctx, storage.KeySessions); err != nil {
			log.Error().Err(err).Msg("failed to erase persisted sessions")
		}
		return
	}
	if err := e.store.Save(ctx, storage.KeySessions, e.dir.All()); err != nil {
		log.Error().Err(err).Msg("failed to persist sessions")
	}
}

// truncate shortens s to max characters and appends the ellipsis marker.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max])
	}
	return s + "..."
}
