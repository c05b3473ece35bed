package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
	"github.com/vadim/linkedin-mcp/internal/httpx/response"
)

// SettingsService defines the interface for user settings
type SettingsService interface {
	Get(ctx context.Context) (*entity.Settings, error)
	SetDefaultTone(ctx context.Context, tone string) (*entity.Settings, error)
}

// SettingsHandler handles HTTP requests for user settings
type SettingsHandler struct {
	settings SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(s SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: s}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.Get())
	r.Put("/settings", h.Update())
}

// Get handles GET /settings
func (h *SettingsHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.settings.Get(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, s.View())
	}
}

// UpdateSettingsRequest represents the request body for changing settings
type UpdateSettingsRequest struct {
	DefaultTone string `json:"default_tone"`
}

// Update handles PUT /settings
func (h *SettingsHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateSettingsRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		s, err := h.settings.SetDefaultTone(r.Context(), req.DefaultTone)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, s.View())
	}
}
