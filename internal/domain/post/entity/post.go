package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

// Status represents the current lifecycle state of a post
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// ParseStatus converts a string into a known status
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusPublished:
		return StatusPublished, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", ErrInvalidStatus
	}
}

// MaxCommentaryLength is the LinkedIn limit for post text including hashtags
const MaxCommentaryLength = 3000

// Post is a LinkedIn post moving through draft, scheduled and published states
type Post struct {
	ID              string                   `json:"id"`
	Topic           string                   `json:"topic"`
	Content         content.PostContent      `json:"content"`
	Status          Status                   `json:"status"`
	Hashtags        []content.Hashtag        `json:"hashtags"`
	EngagementScore *content.EngagementScore `json:"engagement_score,omitempty"`
	ScheduledAt     *time.Time               `json:"scheduled_at,omitempty"`
	LinkedInPostURN string                   `json:"linkedin_post_urn,omitempty"` // set after publishing
	PublishedAt     *time.Time               `json:"published_at,omitempty"`
	ErrorMessage    string                   `json:"error_message,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Summary is the compact projection used in listings
type Summary struct {
	PostID    string    `json:"post_id"`
	Topic     string    `json:"topic"`
	Status    Status    `json:"status"`
	Hook      string    `json:"hook"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the listing projection of the post
func (p *Post) Summary() Summary {
	return Summary{
		PostID:    p.ID,
		Topic:     p.Topic,
		Status:    p.Status,
		Hook:      p.Content.Hook,
		CreatedAt: p.CreatedAt,
	}
}

// IsEditable returns true if the content of the post can still change
func (p *Post) IsEditable() bool {
	return p.Status != StatusPublished
}

// IsDeletable returns true if the post can be removed from local storage
func (p *Post) IsDeletable() bool {
	return p.Status != StatusPublished
}

// IsDue reports whether a scheduled post should be published at now
func (p *Post) IsDue(now time.Time) bool {
	return p.Status == StatusScheduled && p.ScheduledAt != nil && !p.ScheduledAt.After(now)
}

// Validate checks the invariants of a freshly built post
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return ErrEmptyTopic
	}
	if strings.TrimSpace(p.Content.Body) == "" {
		return ErrEmptyContent
	}
	return nil
}

// Schedule moves a draft to scheduled
func (p *Post) Schedule(at, now time.Time) error {
	if p.Status != StatusDraft {
		return fmt.Errorf("cannot schedule post in '%s' status: %w", p.Status, ErrNotDraft)
	}
	at = at.UTC()
	p.ScheduledAt = &at
	p.Status = StatusScheduled
	p.touch(now)
	return nil
}

// Unschedule returns a scheduled or failed post to draft
func (p *Post) Unschedule(now time.Time) error {
	if p.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	p.ScheduledAt = nil
	p.ErrorMessage = ""
	p.Status = StatusDraft
	p.touch(now)
	return nil
}

// Publish marks the post as published under the given LinkedIn URN
func (p *Post) Publish(urn string, now time.Time) error {
	if p.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	at := now.UTC()
	p.LinkedInPostURN = urn
	p.PublishedAt = &at
	p.ErrorMessage = ""
	p.Status = StatusPublished
	p.touch(now)
	return nil
}

// Fail records a publishing failure
func (p *Post) Fail(reason string, now time.Time) error {
	if p.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	p.ErrorMessage = reason
	p.Status = StatusFailed
	p.touch(now)
	return nil
}

// UpdateContent replaces the post text
func (p *Post) UpdateContent(c content.PostContent, now time.Time) error {
	if !p.IsEditable() {
		return ErrPublishedImmutable
	}
	p.Content = c
	p.EngagementScore = nil
	p.touch(now)
	return nil
}

// SetEngagementScore stores the latest evaluation
func (p *Post) SetEngagementScore(s content.EngagementScore, now time.Time) {
	p.EngagementScore = &s
	p.touch(now)
}

// SetHashtags replaces the attached hashtags
func (p *Post) SetHashtags(tags []content.Hashtag, now time.Time) {
	p.Hashtags = append([]content.Hashtag(nil), tags...)
	p.touch(now)
}

// HashtagNames returns the hashtag names in order
func (p *Post) HashtagNames() []string {
	names := make([]string, len(p.Hashtags))
	for i, h := range p.Hashtags {
		names[i] = h.Name
	}
	return names
}

// Commentary is the text sent to LinkedIn: the body followed by the hashtags
func (p *Post) Commentary() string {
	if len(p.Hashtags) == 0 {
		return p.Content.Body
	}
	return p.Content.Body + "\n\n" + strings.Join(p.HashtagNames(), " ")
}

// ValidateForPublish checks the commentary fits the LinkedIn limit
func (p *Post) ValidateForPublish() error {
	if n := utf8.RuneCountInString(p.Commentary()); n > MaxCommentaryLength {
		return fmt.Errorf("post text is %d characters: %w", n, ErrContentTooLong)
	}
	return nil
}

func (p *Post) touch(now time.Time) {
	p.UpdatedAt = now.UTC()
}
