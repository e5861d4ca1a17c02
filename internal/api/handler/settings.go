package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jmorelli/confab/internal/api/response"
	"github.com/jmorelli/confab/internal/domain"
	"github.com/jmorelli/confab/internal/engine"
)

// SettingsHandler handles settings and owner identity endpoints
type SettingsHandler struct {
	engine *engine.Engine
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(eng *engine.Engine) *SettingsHandler {
	return &SettingsHandler{engine: eng}
}

// Get returns the current settings and theme flag
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"settings":  h.engine.Settings(),
		"dark_mode": h.engine.DarkMode(),
	})
}

// Update replaces the settings record
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	h.engine.UpdateSettings(r.Context(), settings)
	response.OK(w, settings)
}

type themeRequest struct {
	Dark bool `json:"dark"`
}

// SetTheme records the dark mode flag
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	h.engine.SetDarkMode(r.Context(), req.Dark)
	response.OK(w, map[string]bool{"dark_mode": req.Dark})
}

type ownerRequest struct {
	UserID string `json:"user_id" validate:"required,max=255"`
}

// GetOwner returns the current owner identity
func (h *SettingsHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"user_id": h.engine.Owner()})
}

// SetOwner records the owner identity
func (h *SettingsHandler) SetOwner(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	h.engine.SetOwner(r.Context(), req.UserID)
	response.OK(w, map[string]string{"user_id": h.engine.Owner()})
}
