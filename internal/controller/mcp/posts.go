package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	"github.com/vadim/linkedin-mcp/internal/metrics"
)

// DraftPostInput represents input for the draft_post tool
type DraftPostInput struct {
	Topic   string  `json:"topic" jsonschema:"the subject matter of the post"`
	Tone    *string `json:"tone,omitempty" jsonschema:"professional, casual, inspirational, educational or storytelling; the configured default when omitted"`
	Content *string `json:"content,omitempty" jsonschema:"exact post body to store instead of generated text (max 3000 characters)"`
}

// PostIDInput represents input for tools addressing one post
type PostIDInput struct {
	PostID string `json:"post_id" jsonschema:"ID of the post"`
}

// SchedulePostInput represents input for the schedule_post tool
type SchedulePostInput struct {
	PostID        string `json:"post_id" jsonschema:"ID of the draft post to schedule"`
	ScheduledTime string `json:"scheduled_time" jsonschema:"ISO 8601 date-time to publish at; UTC when no offset is given"`
}

// DeletePostOutput represents output from the delete_post tool
type DeletePostOutput struct {
	PostID  string `json:"post_id"`
	Deleted bool   `json:"deleted"`
}

func (s *Server) registerPostTools() {
	addTool(s, &sdkmcp.Tool{
		Name: "draft_post",
		Description: "Draft a new LinkedIn post and store it. Generates template content for the topic and tone, " +
			"or stores the given content as the exact post body.",
	}, func(ctx context.Context, in DraftPostInput) (any, error) {
		return s.posts.DraftPost(ctx, policy.DraftPostInput{
			Topic:   in.Topic,
			Tone:    in.Tone,
			Content: in.Content,
		})
	})

	addTool(s, &sdkmcp.Tool{
		Name: "optimize_post",
		Description: "Score a stored post for engagement potential (length, hashtags, readability, hook, call to action) " +
			"and return improvement suggestions.",
	}, func(ctx context.Context, in PostIDInput) (any, error) {
		return s.posts.OptimizePost(ctx, in.PostID)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "schedule_post",
		Description: "Schedule a draft post for publishing at a future time. The post moves from draft to scheduled.",
	}, func(ctx context.Context, in SchedulePostInput) (any, error) {
		at, err := entity.ParseTimestamp(in.ScheduledTime)
		if err != nil {
			return nil, err
		}
		return s.posts.SchedulePost(ctx, in.PostID, at)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "unschedule_post",
		Description: "Move a scheduled or failed post back to draft.",
	}, func(ctx context.Context, in PostIDInput) (any, error) {
		post, err := s.posts.UnschedulePost(ctx, in.PostID)
		if err != nil {
			return nil, err
		}
		return post.Summary(), nil
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "get_post",
		Description: "Get a stored post with its content, hashtags, score and status.",
	}, func(ctx context.Context, in PostIDInput) (any, error) {
		return s.posts.GetPost(ctx, in.PostID)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post that has not been published.",
	}, func(ctx context.Context, in PostIDInput) (any, error) {
		if err := s.posts.DeletePost(ctx, in.PostID); err != nil {
			return nil, err
		}
		return DeletePostOutput{PostID: in.PostID, Deleted: true}, nil
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "get_drafts",
		Description: "List all draft posts with their topics and hooks.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.posts.ListDrafts(ctx)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "get_scheduled_posts",
		Description: "List all scheduled posts with their topics and hooks.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.posts.ListScheduled(ctx)
	})

	addTool(s, &sdkmcp.Tool{
		Name: "linkedin_publish_post",
		Description: "Publish a draft, scheduled or failed post to LinkedIn right away. " +
			"Requires prior authentication via linkedin_authenticate.",
	}, func(ctx context.Context, in PostIDInput) (any, error) {
		out, err := s.posts.PublishPost(ctx, in.PostID)
		s.metrics.IncPublish(metrics.SourceMCP, err)
		if err != nil {
			return nil, err
		}
		return out, nil
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "post_statistics",
		Description: "Count stored posts per status and report the average engagement score.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.posts.Statistics(ctx)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "export_posts",
		Description: "Write a JSON snapshot of every stored post to the configured object storage.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.posts.ExportPosts(ctx)
	})
}
