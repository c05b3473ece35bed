package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	"github.com/vadim/linkedin-mcp/internal/httpx/response"
)

// PostExporter defines the interface for exporting post snapshots
type PostExporter interface {
	ExportPosts(ctx context.Context) (*policy.ExportOutput, error)
}

// ExportHandler handles export HTTP requests
type ExportHandler struct {
	exporter PostExporter
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter PostExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/exports", h.Create())
}

// Create handles POST /exports
func (h *ExportHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.exporter.ExportPosts(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.Created(w, out)
	}
}
