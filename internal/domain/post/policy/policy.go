package policy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	authentity "github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	contentsvc "github.com/vadim/linkedin-mcp/internal/domain/content/service"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/service"
)

// LinkedInPublisher defines the interface for LinkedIn publishing operations
// This interface is defined here (consumer) not in the upstream package (provider)
type LinkedInPublisher interface {
	Publish(ctx context.Context, in PublishInput) (*PublishOutput, error)
}

// PublishInput represents input for publishing
type PublishInput struct {
	AccessToken string
	PersonURN   string
	Post        *entity.Post
}

// PublishOutput represents output from publishing
type PublishOutput struct {
	PostURN string
}

// CredentialsProvider returns usable LinkedIn credentials or
// authentity.ErrNotAuthenticated / authentity.ErrTokenExpired
type CredentialsProvider interface {
	Credentials(ctx context.Context) (*authentity.Credentials, error)
}

// SettingsProvider supplies user defaults
type SettingsProvider interface {
	DefaultTone(ctx context.Context) (content.Tone, error)
}

// Exporter stores export snapshots and returns their location
type Exporter interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// Policy orchestrates post use-cases
type Policy struct {
	svc      *service.Service
	linkedin LinkedInPublisher
	creds    CredentialsProvider
	settings SettingsProvider
	exporter Exporter

	scorer  *contentsvc.Scorer
	curator *contentsvc.HashtagCurator
	timing  *contentsvc.TimingRecommender
	planner *contentsvc.CalendarPlanner
	drafter *contentsvc.Drafter

	// ids of posts with an upstream publish in flight
	publishing   map[string]struct{}
	publishingMu sync.Mutex
}

// New creates a new post policy. exporter may be nil when exports are disabled.
func New(svc *service.Service, linkedin LinkedInPublisher, creds CredentialsProvider, settings SettingsProvider, exporter Exporter) *Policy {
	return &Policy{
		svc:      svc,
		linkedin: linkedin,
		creds:    creds,
		settings: settings,
		exporter: exporter,
		scorer:   contentsvc.NewScorer(),
		curator:  contentsvc.NewHashtagCurator(),
		timing:   contentsvc.NewTimingRecommender(),
		planner:  contentsvc.NewCalendarPlanner().WithClock(svc.Now),
		drafter:  contentsvc.NewDrafter(),

		publishing: make(map[string]struct{}),
	}
}

// DraftPostInput represents input for drafting a post
type DraftPostInput struct {
	Topic string
	// Tone falls back to the configured default when nil
	Tone *string
	// Content skips template generation when set
	Content *string
}

// DraftPostOutput represents output from drafting a post
type DraftPostOutput struct {
	PostID  string              `json:"post_id"`
	Topic   string              `json:"topic"`
	Content content.PostContent `json:"content"`
	Status  entity.Status       `json:"status"`
}

// DraftPost generates (or takes) post text and stores it as a draft
func (p *Policy) DraftPost(ctx context.Context, in DraftPostInput) (*DraftPostOutput, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, entity.ErrEmptyTopic
	}

	tone, err := p.resolveTone(ctx, in.Tone)
	if err != nil {
		return nil, err
	}

	var pc content.PostContent
	if in.Content != nil {
		body := *in.Content
		hook, _, _ := strings.Cut(body, "\n")
		pc = content.PostContent{
			Body: body,
			Hook: hook,
			Tone: normalizeTone(tone),
		}
	} else {
		pc = p.drafter.Draft(in.Topic, tone)
	}

	post, err := p.svc.CreatePost(ctx, service.CreateInput{
		Topic:   in.Topic,
		Content: pc,
	})
	if err != nil {
		return nil, err
	}

	return &DraftPostOutput{
		PostID:  post.ID,
		Topic:   post.Topic,
		Content: post.Content,
		Status:  post.Status,
	}, nil
}

// GenerateContent renders template text for a topic without storing a post
func (p *Policy) GenerateContent(ctx context.Context, topic string, tone *string) (*content.PostContent, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, entity.ErrEmptyTopic
	}

	t, err := p.resolveTone(ctx, tone)
	if err != nil {
		return nil, err
	}

	pc := p.drafter.Draft(topic, t)
	return &pc, nil
}

func (p *Policy) resolveTone(ctx context.Context, tone *string) (string, error) {
	if tone != nil {
		return *tone, nil
	}
	def, err := p.settings.DefaultTone(ctx)
	if err != nil {
		return "", fmt.Errorf("loading default tone: %w", err)
	}
	return string(def), nil
}

// OptimizePostOutput represents output from scoring a stored post
type OptimizePostOutput struct {
	PostID  string                  `json:"post_id"`
	Score   content.EngagementScore `json:"score"`
	Content content.PostContent     `json:"content"`
}

// OptimizePost scores a stored post against its attached hashtags and keeps the score
func (p *Policy) OptimizePost(ctx context.Context, id string) (*OptimizePostOutput, error) {
	post, err := p.svc.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	score := p.scorer.Score(post.Content, len(post.Hashtags))
	if _, err := p.svc.SetEngagementScore(ctx, id, score); err != nil {
		return nil, err
	}

	return &OptimizePostOutput{
		PostID:  post.ID,
		Score:   score,
		Content: post.Content,
	}, nil
}

// ScoreContentInput represents free text to score without storing it
type ScoreContentInput struct {
	Body string
	// Hook defaults to the first line of Body
	Hook         string
	CallToAction string
	HashtagCount int
}

// ScoreContent scores text that is not stored as a post
func (p *Policy) ScoreContent(in ScoreContentInput) content.EngagementScore {
	hook := in.Hook
	if hook == "" {
		hook, _, _ = strings.Cut(in.Body, "\n")
	}

	return p.scorer.Score(content.PostContent{
		Body:         in.Body,
		Hook:         hook,
		CallToAction: in.CallToAction,
	}, in.HashtagCount)
}

// SuggestHashtagsInput represents input for hashtag suggestions
type SuggestHashtagsInput struct {
	Topic    string
	Industry string
	// PostID attaches the suggestions to a stored post when set
	PostID *string
}

// SuggestHashtagsOutput represents output from hashtag suggestions
type SuggestHashtagsOutput struct {
	PostID   *string           `json:"post_id"`
	Topic    string            `json:"topic"`
	Hashtags []content.Hashtag `json:"hashtags"`
}

// SuggestHashtags builds a hashtag mix and optionally attaches it to a post
func (p *Policy) SuggestHashtags(ctx context.Context, in SuggestHashtagsInput) (*SuggestHashtagsOutput, error) {
	tags := p.curator.Suggest(in.Topic, in.Industry)

	if in.PostID != nil {
		if _, err := p.svc.SetHashtags(ctx, *in.PostID, tags); err != nil {
			return nil, err
		}
	}

	return &SuggestHashtagsOutput{
		PostID:   in.PostID,
		Topic:    in.Topic,
		Hashtags: tags,
	}, nil
}

// OptimalTimesOutput represents posting time recommendations
type OptimalTimesOutput struct {
	Recommendations []content.OptimalPostingTime `json:"recommendations"`
	Timezone        string                       `json:"timezone"`
	Industry        string                       `json:"industry"`
}

// OptimalTimes returns the top posting slots for an industry
func (p *Policy) OptimalTimes(timezone, industry string) *OptimalTimesOutput {
	if timezone == "" {
		timezone = "UTC"
	}
	if industry == "" {
		industry = "default"
	}

	return &OptimalTimesOutput{
		Recommendations: p.timing.Recommend(timezone, industry, contentsvc.DefaultRecommendations),
		Timezone:        timezone,
		Industry:        industry,
	}
}

// SchedulePostOutput represents output from scheduling a post
type SchedulePostOutput struct {
	PostID        string        `json:"post_id"`
	Status        entity.Status `json:"status"`
	ScheduledTime time.Time     `json:"scheduled_time"`
}

// SchedulePost schedules a draft for publishing at a future time
func (p *Policy) SchedulePost(ctx context.Context, id string, at time.Time) (*SchedulePostOutput, error) {
	if at.Before(p.svc.Now()) {
		return nil, entity.ErrScheduledTimeInPast
	}

	post, err := p.svc.Schedule(ctx, id, at)
	if err != nil {
		return nil, err
	}

	return &SchedulePostOutput{
		PostID:        post.ID,
		Status:        post.Status,
		ScheduledTime: *post.ScheduledAt,
	}, nil
}

// UnschedulePost moves a scheduled or failed post back to draft
func (p *Policy) UnschedulePost(ctx context.Context, id string) (*entity.Post, error) {
	return p.svc.Unschedule(ctx, id)
}

// PlanCalendarInput represents input for calendar planning
type PlanCalendarInput struct {
	Topics       []string
	Start        *time.Time
	PostsPerWeek int
}

// PlanCalendarOutput represents a planned content calendar
type PlanCalendarOutput struct {
	Entries    []content.CalendarEntry `json:"entries"`
	TotalPosts int                     `json:"total_posts"`
}

// PlanCalendar spreads topics over optimal posting days
func (p *Policy) PlanCalendar(in PlanCalendarInput) *PlanCalendarOutput {
	perWeek := in.PostsPerWeek
	if perWeek == 0 {
		perWeek = contentsvc.DefaultPostsPerWeek
	}

	entries := p.planner.Plan(in.Topics, in.Start, perWeek)
	return &PlanCalendarOutput{
		Entries:    entries,
		TotalPosts: len(entries),
	}
}

// GetPost retrieves a post by ID
func (p *Policy) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return p.svc.GetPost(ctx, id)
}

// ListPosts retrieves posts, optionally restricted to one status
func (p *Policy) ListPosts(ctx context.Context, status *entity.Status) ([]entity.Post, error) {
	return p.svc.ListPosts(ctx, status)
}

// DeletePost removes an unpublished post
func (p *Policy) DeletePost(ctx context.Context, id string) error {
	return p.svc.DeletePost(ctx, id)
}

// UpdateContent replaces the text of an unpublished post
func (p *Policy) UpdateContent(ctx context.Context, id string, c content.PostContent) (*entity.Post, error) {
	if strings.TrimSpace(c.Body) == "" {
		return nil, entity.ErrEmptyContent
	}
	if c.Hook == "" {
		c.Hook, _, _ = strings.Cut(c.Body, "\n")
	}
	c.Tone = normalizeTone(string(c.Tone))

	return p.svc.UpdateContent(ctx, id, c)
}

// DraftList represents the draft listing
type DraftList struct {
	Drafts []entity.Summary `json:"drafts"`
	Count  int              `json:"count"`
}

// ListDrafts lists draft posts oldest first
func (p *Policy) ListDrafts(ctx context.Context) (*DraftList, error) {
	summaries, err := p.summaries(ctx, entity.StatusDraft)
	if err != nil {
		return nil, err
	}
	return &DraftList{Drafts: summaries, Count: len(summaries)}, nil
}

// ScheduledList represents the scheduled post listing
type ScheduledList struct {
	Scheduled []entity.Summary `json:"scheduled"`
	Count     int              `json:"count"`
}

// ListScheduled lists scheduled posts oldest first
func (p *Policy) ListScheduled(ctx context.Context) (*ScheduledList, error) {
	summaries, err := p.summaries(ctx, entity.StatusScheduled)
	if err != nil {
		return nil, err
	}
	return &ScheduledList{Scheduled: summaries, Count: len(summaries)}, nil
}

func (p *Policy) summaries(ctx context.Context, status entity.Status) ([]entity.Summary, error) {
	posts, err := p.svc.ListPosts(ctx, &status)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Summary, len(posts))
	for i := range posts {
		out[i] = posts[i].Summary()
	}
	return out, nil
}

// PublishPostOutput represents output from publishing a post
type PublishPostOutput struct {
	PostID          string        `json:"post_id"`
	LinkedInPostURN string        `json:"linkedin_post_urn"`
	Status          entity.Status `json:"status"`
	PublishedAt     time.Time     `json:"published_at"`
}

// PublishPost immediately publishes a draft, scheduled or failed post to LinkedIn.
// A rejected publish marks the post as failed. Concurrent publishes of the same
// post are refused with ErrPublishInProgress.
func (p *Policy) PublishPost(ctx context.Context, id string) (*PublishPostOutput, error) {
	creds, err := p.creds.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	if !p.claimPublish(id) {
		return nil, entity.ErrPublishInProgress
	}
	defer p.releasePublish(id)

	// read after claiming so a publish that just finished is seen
	post, err := p.svc.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.Status == entity.StatusPublished {
		return nil, entity.ErrAlreadyPublished
	}

	if err := post.ValidateForPublish(); err != nil {
		return nil, err
	}

	// Publish to LinkedIn
	result, err := p.linkedin.Publish(ctx, PublishInput{
		AccessToken: creds.AccessToken,
		PersonURN:   creds.PersonURN,
		Post:        post,
	})
	if err != nil {
		if _, markErr := p.svc.MarkAsFailed(ctx, id, err.Error()); markErr != nil {
			return nil, errors.Join(err, markErr)
		}
		return nil, err
	}

	post, err = p.svc.MarkAsPublished(ctx, id, result.PostURN)
	if err != nil {
		return nil, err
	}

	return &PublishPostOutput{
		PostID:          post.ID,
		LinkedInPostURN: post.LinkedInPostURN,
		Status:          post.Status,
		PublishedAt:     *post.PublishedAt,
	}, nil
}

func (p *Policy) claimPublish(id string) bool {
	p.publishingMu.Lock()
	defer p.publishingMu.Unlock()

	if _, ok := p.publishing[id]; ok {
		return false
	}
	p.publishing[id] = struct{}{}
	return true
}

func (p *Policy) releasePublish(id string) {
	p.publishingMu.Lock()
	delete(p.publishing, id)
	p.publishingMu.Unlock()
}

// ProcessFailure describes one due post that could not be published
type ProcessFailure struct {
	PostID string
	Err    error
}

// ProcessResult summarizes one pass over due posts
type ProcessResult struct {
	Due       int
	Published []string
	Failed    []ProcessFailure
}

// ProcessDuePosts publishes every scheduled post whose time has come.
// A failing post does not stop the others.
// This should be called by a cron job or scheduler
func (p *Policy) ProcessDuePosts(ctx context.Context) (*ProcessResult, error) {
	due, err := p.svc.GetDuePosts(ctx)
	if err != nil {
		return nil, err
	}

	res := &ProcessResult{Due: len(due)}
	for _, post := range due {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		if _, err := p.PublishPost(ctx, post.ID); err != nil {
			// credentials problems would fail every post the same way
			if errors.Is(err, authentity.ErrNotAuthenticated) || errors.Is(err, authentity.ErrTokenExpired) {
				return res, err
			}
			// published through another path since the due list was read
			if errors.Is(err, entity.ErrPublishInProgress) || errors.Is(err, entity.ErrAlreadyPublished) {
				continue
			}
			res.Failed = append(res.Failed, ProcessFailure{PostID: post.ID, Err: err})
			continue
		}
		res.Published = append(res.Published, post.ID)
	}

	return res, nil
}

// Statistics aggregates post counts per status
func (p *Policy) Statistics(ctx context.Context) (*entity.Statistics, error) {
	return p.svc.GetStatistics(ctx)
}

// ExportOutput represents a finished export
type ExportOutput struct {
	Location   string    `json:"location"`
	Count      int       `json:"count"`
	ExportedAt time.Time `json:"exported_at"`
}

type snapshot struct {
	ExportedAt time.Time     `json:"exported_at"`
	Count      int           `json:"count"`
	Posts      []entity.Post `json:"posts"`
}

// ExportPosts writes a JSON snapshot of every post to the exporter
func (p *Policy) ExportPosts(ctx context.Context) (*ExportOutput, error) {
	if p.exporter == nil {
		return nil, entity.ErrExportDisabled
	}

	posts, err := p.svc.ListPosts(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := p.svc.Now()
	body, err := json.MarshalIndent(snapshot{ExportedAt: now, Count: len(posts), Posts: posts}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("posts-%s.json", now.Format("20060102T150405Z"))
	location, err := p.exporter.Put(ctx, name, "application/json", body)
	if err != nil {
		return nil, fmt.Errorf("exporting posts: %w", err)
	}

	return &ExportOutput{
		Location:   location,
		Count:      len(posts),
		ExportedAt: now,
	}, nil
}

func normalizeTone(tone string) content.Tone {
	t := strings.ToLower(strings.TrimSpace(tone))
	if t == "" {
		return content.ToneProfessional
	}
	return content.Tone(t)
}
