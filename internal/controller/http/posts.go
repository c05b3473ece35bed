package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	"github.com/vadim/linkedin-mcp/internal/httpx/response"
	"github.com/vadim/linkedin-mcp/internal/metrics"
)

// PostPolicy defines the interface for post operations
// Interface is defined by consumer (handler), not provider (policy)
type PostPolicy interface {
	DraftPost(ctx context.Context, in policy.DraftPostInput) (*policy.DraftPostOutput, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	ListPosts(ctx context.Context, status *entity.Status) ([]entity.Post, error)
	DeletePost(ctx context.Context, id string) error
	UpdateContent(ctx context.Context, id string, c content.PostContent) (*entity.Post, error)
	OptimizePost(ctx context.Context, id string) (*policy.OptimizePostOutput, error)
	SuggestHashtags(ctx context.Context, in policy.SuggestHashtagsInput) (*policy.SuggestHashtagsOutput, error)
	SchedulePost(ctx context.Context, id string, at time.Time) (*policy.SchedulePostOutput, error)
	UnschedulePost(ctx context.Context, id string) (*entity.Post, error)
	PublishPost(ctx context.Context, id string) (*policy.PublishPostOutput, error)
	Statistics(ctx context.Context) (*entity.Statistics, error)
}

// PostHandler handles HTTP requests for stored posts
type PostHandler struct {
	policy  PostPolicy
	metrics *metrics.Metrics
}

// NewPostHandler creates a new post handler
func NewPostHandler(p PostPolicy, m *metrics.Metrics) *PostHandler {
	return &PostHandler{policy: p, metrics: m}
}

// RegisterRoutes registers post routes
func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", h.Create())
		r.Get("/", h.List())
		r.Get("/statistics", h.Statistics())
		r.Get("/{id}", h.Get())
		r.Delete("/{id}", h.Delete())
		r.Put("/{id}/content", h.UpdateContent())
		r.Post("/{id}/optimize", h.Optimize())
		r.Post("/{id}/hashtags", h.Hashtags())
		r.Post("/{id}/schedule", h.Schedule())
		r.Post("/{id}/unschedule", h.Unschedule())
		r.Post("/{id}/publish", h.Publish())
	})
}

// CreateRequest represents the request body for drafting a post
type CreateRequest struct {
	Topic   string  `json:"topic"`
	Tone    *string `json:"tone,omitempty"`
	Content *string `json:"content,omitempty"` // exact body; generated when omitted
}

// Create handles POST /posts
func (h *PostHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		out, err := h.policy.DraftPost(r.Context(), policy.DraftPostInput{
			Topic:   req.Topic,
			Tone:    req.Tone,
			Content: req.Content,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.Created(w, out)
	}
}

// ListResponse represents the response for listing posts
type ListResponse struct {
	Posts []entity.Post `json:"posts"`
	Count int           `json:"count"`
}

// List handles GET /posts
func (h *PostHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *entity.Status
		if s := r.URL.Query().Get("status"); s != "" {
			st, err := entity.ParseStatus(s)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			status = &st
		}

		posts, err := h.policy.ListPosts(r.Context(), status)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		if posts == nil {
			posts = []entity.Post{}
		}

		response.OK(w, ListResponse{Posts: posts, Count: len(posts)})
	}
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.policy.GetPost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Delete handles DELETE /posts/{id}
func (h *PostHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.policy.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
			handleDomainError(w, err)
			return
		}

		response.NoContent(w)
	}
}

// UpdateContentRequest represents the request body for replacing post text
type UpdateContentRequest struct {
	Body         string `json:"body"`
	Hook         string `json:"hook,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`
	Tone         string `json:"tone,omitempty"`
}

// UpdateContent handles PUT /posts/{id}/content
func (h *PostHandler) UpdateContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateContentRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		post, err := h.policy.UpdateContent(r.Context(), chi.URLParam(r, "id"), content.PostContent{
			Body:         req.Body,
			Hook:         req.Hook,
			CallToAction: req.CallToAction,
			Tone:         content.Tone(req.Tone),
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Optimize handles POST /posts/{id}/optimize
func (h *PostHandler) Optimize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.policy.OptimizePost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// HashtagsRequest represents the request body for attaching hashtags
type HashtagsRequest struct {
	Topic    string `json:"topic,omitempty"` // defaults to the post topic
	Industry string `json:"industry,omitempty"`
}

// Hashtags handles POST /posts/{id}/hashtags
func (h *PostHandler) Hashtags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req HashtagsRequest
		if r.ContentLength != 0 {
			if err := response.DecodeJSON(w, r, &req); err != nil {
				response.BadRequest(w, err.Error())
				return
			}
		}

		if req.Topic == "" {
			post, err := h.policy.GetPost(r.Context(), id)
			if err != nil {
				handleDomainError(w, err)
				return
			}
			req.Topic = post.Topic
		}

		out, err := h.policy.SuggestHashtags(r.Context(), policy.SuggestHashtagsInput{
			Topic:    req.Topic,
			Industry: req.Industry,
			PostID:   &id,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// ScheduleRequest represents the request body for scheduling a post
type ScheduleRequest struct {
	ScheduledTime string `json:"scheduled_time"` // ISO 8601, UTC when no offset is given
}

// Schedule handles POST /posts/{id}/schedule
func (h *PostHandler) Schedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		at, err := entity.ParseTimestamp(req.ScheduledTime)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		out, err := h.policy.SchedulePost(r.Context(), chi.URLParam(r, "id"), at)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// Unschedule handles POST /posts/{id}/unschedule
func (h *PostHandler) Unschedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.policy.UnschedulePost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, post)
	}
}

// Publish handles POST /posts/{id}/publish
func (h *PostHandler) Publish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.policy.PublishPost(r.Context(), chi.URLParam(r, "id"))
		h.metrics.IncPublish(metrics.SourceHTTP, err)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// Statistics handles GET /posts/statistics
func (h *PostHandler) Statistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.policy.Statistics(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, stats)
	}
}
