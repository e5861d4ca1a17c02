package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmorelli/confab/internal/api/response"
	"github.com/jmorelli/confab/internal/engine"
)

// SessionHandler handles session directory endpoints
type SessionHandler struct {
	engine *engine.Engine
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(eng *engine.Engine) *SessionHandler {
	return &SessionHandler{engine: eng}
}

// Search returns the filtered session directory
func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	starredOnly := false
	if s := r.URL.Query().Get("starred"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			starredOnly = v
		}
	}

	response.OK(w, h.engine.Search(q, starredOnly))
}

// Delete removes a session from the directory
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.engine.DeleteSession(r.Context(), id)
	response.OK(w, map[string]string{"message": "session deleted"})
}

// ToggleStar flips the starred flag on a session
func (h *SessionHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.engine.ToggleStarSession(r.Context(), id)
	response.OK(w, h.engine.Sessions())
}

// ToggleArchive flips the archived flag on a session
func (h *SessionHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.engine.ToggleArchiveSession(r.Context(), id)
	response.OK(w, h.engine.Sessions())
}

// ClearAll empties the message log, the directory and the persisted state
func (h *SessionHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearAll(r.Context())
	response.NoContent(w)
}
