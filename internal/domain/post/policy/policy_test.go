package policy

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/dao"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/service"
)

var now = time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC) // Monday

type fakePublisher struct {
	calls []PublishInput
	fail  map[string]error
}

func (f *fakePublisher) Publish(ctx context.Context, in PublishInput) (*PublishOutput, error) {
	f.calls = append(f.calls, in)
	if err := f.fail[in.Post.ID]; err != nil {
		return nil, err
	}
	return &PublishOutput{PostURN: "urn:li:share:" + in.Post.ID}, nil
}

type fakeCredentials struct {
	err error
}

func (f *fakeCredentials) Credentials(ctx context.Context) (*authentity.Credentials, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &authentity.Credentials{AccessToken: "tok", PersonURN: "urn:li:person:me", ExpiresAt: now.Add(time.Hour)}, nil
}

type fakeSettings struct {
	tone content.Tone
}

func (f fakeSettings) DefaultTone(ctx context.Context) (content.Tone, error) {
	return f.tone, nil
}

type fakeExporter struct {
	name string
	body []byte
}

func (f *fakeExporter) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	f.name = name
	f.body = body
	return "s3://bucket/exports/" + name, nil
}

type fixture struct {
	policy    *Policy
	svc       *service.Service
	publisher *fakePublisher
	creds     *fakeCredentials
	exporter  *fakeExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	svc := service.New(dao.NewPostJSON(t.TempDir())).WithClock(func() time.Time { return now })
	f := &fixture{
		svc:       svc,
		publisher: &fakePublisher{fail: map[string]error{}},
		creds:     &fakeCredentials{},
		exporter:  &fakeExporter{},
	}
	f.policy = New(svc, f.publisher, f.creds, fakeSettings{tone: content.ToneCasual}, f.exporter)
	return f
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) draft(t *testing.T, topic string) string {
	t.Helper()
	out, err := f.policy.DraftPost(context.Background(), DraftPostInput{Topic: topic})
	require.NoError(t, err)
	return out.PostID
}

func TestPolicy_DraftPost(t *testing.T) {
	ctx := context.Background()

	t.Run("uses default tone", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.policy.DraftPost(ctx, DraftPostInput{Topic: "remote work"})
		require.NoError(t, err)

		assert.Equal(t, entity.StatusDraft, out.Status)
		assert.Equal(t, content.ToneCasual, out.Content.Tone)
		assert.Equal(t, "Thoughts? Drop them below 👇", out.Content.CallToAction)

		stored, err := f.policy.GetPost(ctx, out.PostID)
		require.NoError(t, err)
		assert.Equal(t, out.Content, stored.Content)
	})

	t.Run("explicit tone wins", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.policy.DraftPost(ctx, DraftPostInput{Topic: "remote work", Tone: ptr("Educational")})
		require.NoError(t, err)
		assert.Equal(t, content.ToneEducational, out.Content.Tone)
	})

	t.Run("custom content", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.policy.DraftPost(ctx, DraftPostInput{
			Topic:   "launch",
			Content: ptr("We shipped it!\n\nDetails inside."),
		})
		require.NoError(t, err)
		assert.Equal(t, content.PostContent{
			Body: "We shipped it!\n\nDetails inside.",
			Hook: "We shipped it!",
			Tone: content.ToneCasual,
		}, out.Content)
	})

	t.Run("empty topic", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.policy.DraftPost(ctx, DraftPostInput{Topic: "  "})
		require.ErrorIs(t, err, entity.ErrEmptyTopic)
	})

	t.Run("empty custom content", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.policy.DraftPost(ctx, DraftPostInput{Topic: "x", Content: ptr("")})
		require.ErrorIs(t, err, entity.ErrEmptyContent)
	})
}

func TestPolicy_GenerateContent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pc, err := f.policy.GenerateContent(ctx, "remote work", nil)
	require.NoError(t, err)
	assert.Equal(t, content.ToneCasual, pc.Tone)
	assert.Contains(t, pc.Body, "remote work")

	pc, err = f.policy.GenerateContent(ctx, "remote work", ptr("storytelling"))
	require.NoError(t, err)
	assert.Equal(t, content.ToneStorytelling, pc.Tone)

	_, err = f.policy.GenerateContent(ctx, "", nil)
	require.ErrorIs(t, err, entity.ErrEmptyTopic)

	stats, err := f.policy.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total, "nothing is stored")
}

func TestPolicy_OptimizePost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.draft(t, "cloud costs")

	before, err := f.policy.OptimizePost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20.0, before.Score.HashtagScore)

	_, err = f.policy.SuggestHashtags(ctx, SuggestHashtagsInput{Topic: "cloud costs", Industry: "technology", PostID: &id})
	require.NoError(t, err)

	after, err := f.policy.OptimizePost(ctx, id)
	require.NoError(t, err)
	assert.Greater(t, after.Score.Overall, before.Score.Overall)

	stored, err := f.policy.GetPost(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.EngagementScore)
	assert.Equal(t, after.Score.Overall, stored.EngagementScore.Overall)

	_, err = f.policy.OptimizePost(ctx, "missing")
	require.ErrorIs(t, err, entity.ErrPostNotFound)
}

func TestPolicy_ScoreContent(t *testing.T) {
	f := newFixture(t)

	score := f.policy.ScoreContent(ScoreContentInput{
		Body:         "Why most teams never learn from incidents?\n\nShort body.",
		CallToAction: "Share your thoughts below",
		HashtagCount: 3,
	})
	assert.Equal(t, 100.0, score.HashtagScore)
	assert.Greater(t, score.HookScore, 0.0, "hook derived from the first line")
	assert.Greater(t, score.CTAScore, 0.0)
}

func TestPolicy_SuggestHashtags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.policy.SuggestHashtags(ctx, SuggestHashtagsInput{Topic: "AI", Industry: "technology"})
	require.NoError(t, err)
	assert.Nil(t, out.PostID)
	assert.NotEmpty(t, out.Hashtags)

	_, err = f.policy.SuggestHashtags(ctx, SuggestHashtagsInput{Topic: "AI", PostID: ptr("missing")})
	require.ErrorIs(t, err, entity.ErrPostNotFound)

	id := f.draft(t, "AI")
	out, err = f.policy.SuggestHashtags(ctx, SuggestHashtagsInput{Topic: "AI", Industry: "technology", PostID: &id})
	require.NoError(t, err)

	stored, err := f.policy.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, out.Hashtags, stored.Hashtags)
}

func TestPolicy_OptimalTimes(t *testing.T) {
	f := newFixture(t)

	out := f.policy.OptimalTimes("", "")
	assert.Equal(t, "UTC", out.Timezone)
	assert.Equal(t, "default", out.Industry)
	assert.Len(t, out.Recommendations, 3)
}

func TestPolicy_SchedulePost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.draft(t, "planning")

	_, err := f.policy.SchedulePost(ctx, id, now.Add(-time.Minute))
	require.ErrorIs(t, err, entity.ErrScheduledTimeInPast)

	at := time.Date(2025, time.January, 7, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
	out, err := f.policy.SchedulePost(ctx, id, at)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusScheduled, out.Status)
	assert.True(t, at.Equal(out.ScheduledTime))

	_, err = f.policy.SchedulePost(ctx, id, at)
	require.ErrorIs(t, err, entity.ErrNotDraft)

	list, err := f.policy.ListScheduled(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, id, list.Scheduled[0].PostID)

	post, err := f.policy.UnschedulePost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, post.Status)
	assert.Nil(t, post.ScheduledAt)
}

func TestPolicy_PlanCalendar(t *testing.T) {
	f := newFixture(t)

	out := f.policy.PlanCalendar(PlanCalendarInput{Topics: []string{"a", "b"}})
	require.Equal(t, 2, out.TotalPosts)
	// starts from the service clock (Monday) and moves to Tuesday
	assert.Equal(t, time.Date(2025, time.January, 7, 9, 0, 0, 0, time.UTC), out.Entries[0].Date)

	empty := f.policy.PlanCalendar(PlanCalendarInput{})
	assert.Equal(t, 0, empty.TotalPosts)
	assert.NotNil(t, empty.Entries)
}

func TestPolicy_ListDrafts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.policy.ListDrafts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Drafts)

	id := f.draft(t, "first")
	list, err = f.policy.ListDrafts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, id, list.Drafts[0].PostID)
	assert.Equal(t, "first", list.Drafts[0].Topic)
	assert.NotEmpty(t, list.Drafts[0].Hook)
}

func TestPolicy_PublishPost(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a draft", func(t *testing.T) {
		f := newFixture(t)
		id := f.draft(t, "shipping")

		out, err := f.policy.PublishPost(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPublished, out.Status)
		assert.Equal(t, "urn:li:share:"+id, out.LinkedInPostURN)
		assert.True(t, now.Equal(out.PublishedAt))

		require.Len(t, f.publisher.calls, 1)
		assert.Equal(t, "tok", f.publisher.calls[0].AccessToken)
		assert.Equal(t, "urn:li:person:me", f.publisher.calls[0].PersonURN)

		_, err = f.policy.PublishPost(ctx, id)
		require.ErrorIs(t, err, entity.ErrAlreadyPublished)
		assert.Len(t, f.publisher.calls, 1)
	})

	t.Run("requires credentials", func(t *testing.T) {
		f := newFixture(t)
		id := f.draft(t, "shipping")
		f.creds.err = authentity.ErrTokenExpired

		_, err := f.policy.PublishPost(ctx, id)
		require.ErrorIs(t, err, authentity.ErrTokenExpired)
		assert.Empty(t, f.publisher.calls)
	})

	t.Run("rejects long text before calling LinkedIn", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.policy.DraftPost(ctx, DraftPostInput{Topic: "long", Content: ptr(strings.Repeat("a", 3001))})
		require.NoError(t, err)

		_, err = f.policy.PublishPost(ctx, out.PostID)
		require.ErrorIs(t, err, entity.ErrContentTooLong)
		assert.Empty(t, f.publisher.calls)

		stored, err := f.policy.GetPost(ctx, out.PostID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraft, stored.Status)
	})

	t.Run("upstream failure marks post failed", func(t *testing.T) {
		f := newFixture(t)
		id := f.draft(t, "shipping")
		f.publisher.fail[id] = errors.New("LinkedIn API error (422)")

		_, err := f.policy.PublishPost(ctx, id)
		require.Error(t, err)

		stored, err := f.policy.GetPost(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFailed, stored.Status)
		assert.Equal(t, "LinkedIn API error (422)", stored.ErrorMessage)

		delete(f.publisher.fail, id)
		out, err := f.policy.PublishPost(ctx, id)
		require.NoError(t, err, "failed posts can be retried")
		assert.Equal(t, entity.StatusPublished, out.Status)
	})
}

type blockingPublisher struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingPublisher) Publish(ctx context.Context, in PublishInput) (*PublishOutput, error) {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return &PublishOutput{PostURN: "urn:li:share:" + in.Post.ID}, nil
}

func TestPolicy_PublishPost_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.draft(t, "remote work")

	pub := &blockingPublisher{entered: make(chan struct{}, 1), release: make(chan struct{})}
	f.policy.linkedin = pub

	done := make(chan error, 1)
	go func() {
		_, err := f.policy.PublishPost(ctx, id)
		done <- err
	}()
	<-pub.entered

	_, err := f.policy.PublishPost(ctx, id)
	assert.ErrorIs(t, err, entity.ErrPublishInProgress)

	close(pub.release)
	require.NoError(t, <-done)

	_, err = f.policy.PublishPost(ctx, id)
	assert.ErrorIs(t, err, entity.ErrAlreadyPublished)

	assert.Equal(t, int32(1), pub.calls.Load())

	post, err := f.policy.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublished, post.Status)
	assert.Equal(t, "urn:li:share:"+id, post.LinkedInPostURN)
}

func TestPolicy_ProcessDuePosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.draft(t, "a")
	b := f.draft(t, "b")
	c := f.draft(t, "c")
	for i, id := range []string{a, b, c} {
		_, err := f.policy.SchedulePost(ctx, id, now.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}
	f.publisher.fail[a] = errors.New("boom")

	res, err := f.policy.ProcessDuePosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Due, "nothing is due yet")

	// move the clock past a and b
	f.svc.WithClock(func() time.Time { return now.Add(2 * time.Minute) })

	res, err = f.policy.ProcessDuePosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Due)
	assert.Equal(t, []string{b}, res.Published)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, a, res.Failed[0].PostID)

	stats, err := f.policy.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.PublishedCount)
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 1, stats.ScheduledCount)
}

func TestPolicy_ProcessDuePosts_StopsWithoutCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, topic := range []string{"a", "b"} {
		id := f.draft(t, topic)
		_, err := f.policy.SchedulePost(ctx, id, now)
		require.NoError(t, err)
	}
	f.creds.err = authentity.ErrNotAuthenticated

	res, err := f.policy.ProcessDuePosts(ctx)
	require.ErrorIs(t, err, authentity.ErrNotAuthenticated)
	assert.Equal(t, 2, res.Due)
	assert.Empty(t, res.Failed)

	list, err := f.policy.ListScheduled(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count, "posts stay scheduled")
}

func TestPolicy_ExportPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.draft(t, "one")
	f.draft(t, "two")

	out, err := f.policy.ExportPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "posts-20250106T080000Z.json", f.exporter.name)
	assert.Equal(t, "s3://bucket/exports/posts-20250106T080000Z.json", out.Location)

	var snap struct {
		Count int           `json:"count"`
		Posts []entity.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(f.exporter.body, &snap))
	assert.Equal(t, 2, snap.Count)
	assert.Len(t, snap.Posts, 2)

	disabled := New(f.svc, f.publisher, f.creds, fakeSettings{}, nil)
	_, err = disabled.ExportPosts(ctx)
	require.ErrorIs(t, err, entity.ErrExportDisabled)
}
