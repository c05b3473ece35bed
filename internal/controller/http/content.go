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
)

// ContentPolicy defines the stateless content operations
type ContentPolicy interface {
	GenerateContent(ctx context.Context, topic string, tone *string) (*content.PostContent, error)
	ScoreContent(in policy.ScoreContentInput) content.EngagementScore
	SuggestHashtags(ctx context.Context, in policy.SuggestHashtagsInput) (*policy.SuggestHashtagsOutput, error)
	OptimalTimes(timezone, industry string) *policy.OptimalTimesOutput
	PlanCalendar(in policy.PlanCalendarInput) *policy.PlanCalendarOutput
}

// ContentHandler handles HTTP requests for content helpers that store nothing
type ContentHandler struct {
	policy ContentPolicy
}

// NewContentHandler creates a new content handler
func NewContentHandler(p ContentPolicy) *ContentHandler {
	return &ContentHandler{policy: p}
}

// RegisterRoutes registers content routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/content", func(r chi.Router) {
		r.Post("/draft", h.Draft())
		r.Post("/score", h.Score())
		r.Get("/hashtags", h.Hashtags())
		r.Get("/posting-times", h.PostingTimes())
		r.Post("/calendar", h.Calendar())
	})
}

// DraftRequest represents the request body for generating post text
type DraftRequest struct {
	Topic string  `json:"topic"`
	Tone  *string `json:"tone,omitempty"`
}

// Draft handles POST /content/draft
func (h *ContentHandler) Draft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DraftRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		pc, err := h.policy.GenerateContent(r.Context(), req.Topic, req.Tone)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, pc)
	}
}

// ScoreRequest represents the request body for scoring text
type ScoreRequest struct {
	Text         string `json:"text"`
	Hook         string `json:"hook,omitempty"`
	CallToAction string `json:"call_to_action,omitempty"`
	HashtagCount int    `json:"hashtag_count,omitempty"`
}

// Score handles POST /content/score
func (h *ContentHandler) Score() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		if req.Text == "" {
			response.BadRequest(w, "text is required")
			return
		}
		if req.HashtagCount < 0 {
			response.BadRequest(w, "hashtag_count must not be negative")
			return
		}

		response.OK(w, h.policy.ScoreContent(policy.ScoreContentInput{
			Body:         req.Text,
			Hook:         req.Hook,
			CallToAction: req.CallToAction,
			HashtagCount: req.HashtagCount,
		}))
	}
}

// Hashtags handles GET /content/hashtags
func (h *ContentHandler) Hashtags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		topic := q.Get("topic")
		if topic == "" {
			response.BadRequest(w, "topic is required")
			return
		}

		out, err := h.policy.SuggestHashtags(r.Context(), policy.SuggestHashtagsInput{
			Topic:    topic,
			Industry: q.Get("industry"),
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}

		response.OK(w, out)
	}
}

// PostingTimes handles GET /content/posting-times
func (h *ContentHandler) PostingTimes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		response.OK(w, h.policy.OptimalTimes(q.Get("timezone"), q.Get("industry")))
	}
}

// CalendarRequest represents the request body for planning a calendar
type CalendarRequest struct {
	Topics       []string `json:"topics"`
	PostsPerWeek int      `json:"posts_per_week,omitempty"`
	StartDate    string   `json:"start_date,omitempty"` // ISO 8601
}

// Calendar handles POST /content/calendar
func (h *ContentHandler) Calendar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalendarRequest
		if err := response.DecodeJSON(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		if req.PostsPerWeek < 0 {
			response.BadRequest(w, "posts_per_week must not be negative")
			return
		}

		var start *time.Time
		if req.StartDate != "" {
			t, err := entity.ParseTimestamp(req.StartDate)
			if err != nil {
				response.BadRequest(w, err.Error())
				return
			}
			start = &t
		}

		response.OK(w, h.policy.PlanCalendar(policy.PlanCalendarInput{
			Topics:       req.Topics,
			Start:        start,
			PostsPerWeek: req.PostsPerWeek,
		}))
	}
}
