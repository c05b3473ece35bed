package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/dao"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

// Service handles persistence-backed business logic for posts
type Service struct {
	posts dao.PostRepository
	now   func() time.Time
}

// New creates a new post service
func New(posts dao.PostRepository) *Service {
	return &Service{
		posts: posts,
		now:   time.Now,
	}
}

// WithClock replaces the clock used for timestamps
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service clock's current time in UTC
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// CreateInput represents input for creating a post
type CreateInput struct {
	Topic    string
	Content  content.PostContent
	Hashtags []content.Hashtag
}

// CreatePost creates a new draft post
func (s *Service) CreatePost(ctx context.Context, in CreateInput) (*entity.Post, error) {
	now := s.Now()

	post := &entity.Post{
		ID:        uuid.New().String(),
		Topic:     in.Topic,
		Content:   in.Content,
		Status:    entity.StatusDraft,
		Hashtags:  in.Hashtags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPost retrieves a post by ID
func (s *Service) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}
	return post, nil
}

// DeletePost deletes a post that has not been published
func (s *Service) DeletePost(ctx context.Context, id string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}

	if !post.IsDeletable() {
		return entity.ErrNotDeletable
	}

	return s.posts.Delete(ctx, id)
}

// ListPosts retrieves posts, optionally restricted to one status
func (s *Service) ListPosts(ctx context.Context, status *entity.Status) ([]entity.Post, error) {
	return s.posts.List(ctx, dao.PostFilter{Status: status})
}

// GetDuePosts retrieves all scheduled posts ready to be published
func (s *Service) GetDuePosts(ctx context.Context) ([]entity.Post, error) {
	return s.posts.GetDue(ctx, s.Now())
}

// Schedule schedules a draft for a specific time
func (s *Service) Schedule(ctx context.Context, id string, at time.Time) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		return p.Schedule(at, now)
	})
}

// Unschedule moves a scheduled or failed post back to draft
func (s *Service) Unschedule(ctx context.Context, id string) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		return p.Unschedule(now)
	})
}

// UpdateContent replaces the text of an unpublished post
func (s *Service) UpdateContent(ctx context.Context, id string, c content.PostContent) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		return p.UpdateContent(c, now)
	})
}

// SetEngagementScore stores a score on the post
func (s *Service) SetEngagementScore(ctx context.Context, id string, score content.EngagementScore) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		p.SetEngagementScore(score, now)
		return nil
	})
}

// SetHashtags replaces the hashtags attached to the post
func (s *Service) SetHashtags(ctx context.Context, id string, tags []content.Hashtag) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		p.SetHashtags(tags, now)
		return nil
	})
}

// MarkAsPublished marks a post as successfully published
func (s *Service) MarkAsPublished(ctx context.Context, id string, urn string) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		return p.Publish(urn, now)
	})
}

// MarkAsFailed marks a post as failed with an error message
func (s *Service) MarkAsFailed(ctx context.Context, id string, reason string) (*entity.Post, error) {
	return s.modify(ctx, id, func(p *entity.Post, now time.Time) error {
		return p.Fail(reason, now)
	})
}

// GetStatistics aggregates post counts per status
func (s *Service) GetStatistics(ctx context.Context) (*entity.Statistics, error) {
	posts, err := s.posts.List(ctx, dao.PostFilter{})
	if err != nil {
		return nil, err
	}

	stats := &entity.Statistics{}
	for i := range posts {
		stats.Add(&posts[i])
	}
	return stats, nil
}

func (s *Service) modify(ctx context.Context, id string, fn func(*entity.Post, time.Time) error) (*entity.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(post, s.Now()); err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}
