package dao

import (
	"context"
	"time"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

// PostFilter contains filters for listing posts
type PostFilter struct {
	Status *entity.Status
}

// PostRepository defines the interface for post data access.
// Implementations return posts ordered by creation time, oldest first.
type PostRepository interface {
	// Save inserts a post or replaces the stored copy with the same ID
	Save(ctx context.Context, post *entity.Post) error

	// GetByID retrieves a post by its ID; it returns nil, nil when the post does not exist
	GetByID(ctx context.Context, id string) (*entity.Post, error)

	// Delete removes a post by ID
	Delete(ctx context.Context, id string) error

	// List retrieves posts matching the filter
	List(ctx context.Context, filter PostFilter) ([]entity.Post, error)

	// GetDue retrieves scheduled posts whose scheduled time is at or before now,
	// earliest first
	GetDue(ctx context.Context, now time.Time) ([]entity.Post, error)
}

func matches(p *entity.Post, filter PostFilter) bool {
	return filter.Status == nil || p.Status == *filter.Status
}
