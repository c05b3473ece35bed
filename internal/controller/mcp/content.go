package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
)

// SuggestHashtagsInput represents input for the suggest_hashtags tool
type SuggestHashtagsInput struct {
	Topic    string  `json:"topic" jsonschema:"the topic to generate hashtags for"`
	Industry string  `json:"industry,omitempty" jsonschema:"industry vertical such as technology, marketing or leadership"`
	PostID   *string `json:"post_id,omitempty" jsonschema:"optional post ID to attach the hashtags to"`
}

// OptimalTimeInput represents input for the get_optimal_time tool
type OptimalTimeInput struct {
	TimezoneName string `json:"timezone_name,omitempty" jsonschema:"timezone label echoed in the result, e.g. US/Eastern (default UTC)"`
	Industry     string `json:"industry,omitempty" jsonschema:"industry vertical for timing adjustments"`
}

// PlanCalendarInput represents input for the plan_content_calendar tool
type PlanCalendarInput struct {
	Topics       []string `json:"topics" jsonschema:"topics to spread across the calendar"`
	PostsPerWeek int      `json:"posts_per_week,omitempty" jsonschema:"target number of posts per week (default 3)"`
	StartDate    string   `json:"start_date,omitempty" jsonschema:"ISO 8601 date to plan from (default now)"`
}

// ScoreContentInput represents input for the score_content tool
type ScoreContentInput struct {
	Text         string `json:"text" jsonschema:"post body to score"`
	Hook         string `json:"hook,omitempty" jsonschema:"opening line; the first line of text when omitted"`
	CallToAction string `json:"call_to_action,omitempty" jsonschema:"closing call to action"`
	HashtagCount int    `json:"hashtag_count,omitempty" jsonschema:"number of hashtags that will be attached"`
}

func (s *Server) registerContentTools() {
	addTool(s, &sdkmcp.Tool{
		Name: "suggest_hashtags",
		Description: "Suggest a balanced mix of industry, trending, niche and broad hashtags for a topic. " +
			"Optionally attaches them to an existing post.",
	}, func(ctx context.Context, in SuggestHashtagsInput) (any, error) {
		return s.posts.SuggestHashtags(ctx, policy.SuggestHashtagsInput{
			Topic:    in.Topic,
			Industry: in.Industry,
			PostID:   in.PostID,
		})
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "get_optimal_time",
		Description: "Get the top 3 LinkedIn posting slots with confidence scores, adjusted by industry.",
	}, func(_ context.Context, in OptimalTimeInput) (any, error) {
		return s.posts.OptimalTimes(in.TimezoneName, in.Industry), nil
	})

	addTool(s, &sdkmcp.Tool{
		Name: "plan_content_calendar",
		Description: "Plan a multi-day content calendar: topics are spread over optimal posting days " +
			"with rotating content types and posting times.",
	}, func(_ context.Context, in PlanCalendarInput) (any, error) {
		var start *time.Time
		if in.StartDate != "" {
			t, err := entity.ParseTimestamp(in.StartDate)
			if err != nil {
				return nil, err
			}
			start = &t
		}
		return s.posts.PlanCalendar(policy.PlanCalendarInput{
			Topics:       in.Topics,
			Start:        start,
			PostsPerWeek: in.PostsPerWeek,
		}), nil
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "score_content",
		Description: "Score post text for engagement potential without storing it.",
	}, func(_ context.Context, in ScoreContentInput) (any, error) {
		return s.posts.ScoreContent(policy.ScoreContentInput{
			Body:         in.Text,
			Hook:         in.Hook,
			CallToAction: in.CallToAction,
			HashtagCount: in.HashtagCount,
		}), nil
	})
}
