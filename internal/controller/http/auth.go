package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	"github.com/vadim/linkedin-mcp/internal/httpx/response"
)

// AuthPolicy defines the interface for the LinkedIn OAuth flow
type AuthPolicy interface {
	StartAuth(ctx context.Context) (*entity.AuthResult, error)
	CompleteAuth(ctx context.Context, timeout time.Duration) (*entity.AuthResult, error)
	Status(ctx context.Context) (*entity.Status, error)
	Logout(ctx context.Context) error
}

// AuthHandler handles HTTP requests for LinkedIn authentication
type AuthHandler struct {
	policy AuthPolicy
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(p AuthPolicy) *AuthHandler {
	return &AuthHandler{policy: p}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/status", h.Status())
		r.Post("/start", h.Start())
		r.Post("/complete", h.Complete())
		r.Delete("/", h.Logout())
	})
}

// Status handles GET /auth/status
func (h *AuthHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.policy.Status(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, status)
	}
}

// Start handles POST /auth/start
func (h *AuthHandler) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.policy.StartAuth(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, res)
	}
}

// Complete handles POST /auth/complete?timeout=<seconds>
func (h *AuthHandler) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var timeout time.Duration
		if t := r.URL.Query().Get("timeout"); t != "" {
			secs, err := strconv.Atoi(t)
			if err != nil || secs < 1 {
				response.BadRequest(w, "invalid timeout")
				return
			}
			timeout = time.Duration(secs) * time.Second
		}

		res, err := h.policy.CompleteAuth(r.Context(), timeout)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, res)
	}
}

// Logout handles DELETE /auth
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.Logout(r.Context()); err != nil {
			handleDomainError(w, err)
			return
		}

		response.NoContent(w)
	}
}
