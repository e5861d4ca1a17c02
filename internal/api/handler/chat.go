package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jmorelli/confab/internal/api/response"
	"github.com/jmorelli/confab/internal/domain"
	"github.com/jmorelli/confab/internal/engine"
)

var validate = validator.New()

// ChatHandler handles active-conversation endpoints
type ChatHandler struct {
	engine *engine.Engine
}

// NewChatHandler creates a new chat handler
func NewChatHandler(eng *engine.Engine) *ChatHandler {
	return &ChatHandler{engine: eng}
}

type sendRequest struct {
	Message string `json:"message" validate:"required"`
}

// Send handles a sendMessage intent
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.engine.SendMessage(r.Context(), req.Message); err != nil {
		writeEngineError(w, err)
		return
	}

	response.OK(w, h.conversation())
}

// Regenerate re-sends the most recent user message
func (h *ChatHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Regenerate(r.Context()); err != nil {
		writeEngineError(w, err)
		return
	}
	response.OK(w, h.conversation())
}

// StartNew clears the active conversation
func (h *ChatHandler) StartNew(w http.ResponseWriter, r *http.Request) {
	h.engine.StartNew()
	response.OK(w, h.conversation())
}

// Messages returns the active conversation's message log
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.conversation())
}

// ToggleStarMessage flips the star flag on a message
func (h *ChatHandler) ToggleStarMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "messageID")
	h.engine.ToggleStarMessage(r.Context(), id)
	response.OK(w, h.conversation())
}

// Export downloads the active conversation as a JSON snapshot
func (h *ChatHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.ExportSnapshot()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.Filename()))
	json.NewEncoder(w).Encode(snap)
}

func (h *ChatHandler) conversation() map[string]any {
	return map[string]any{
		"conversation_id": h.engine.ConversationID(),
		"messages":        h.engine.Messages(),
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBusy):
		response.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrNoOwner):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
