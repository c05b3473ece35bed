package service

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

func TestScorer_LengthScore(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		want       float64
		suggestion string
	}{
		{"empty", 0, 20, "Post is too short. Aim for 1000-1500 characters."},
		{"just under short limit", 199, 20, "Post is too short. Aim for 1000-1500 characters."},
		{"short limit", 200, 58, "Post is 800 characters short of ideal length."},
		{"half way", 500, 70, "Post is 500 characters short of ideal length."},
		{"ideal lower bound", 1000, 100, ""},
		{"ideal upper bound", 1500, 100, ""},
		{"slightly long", 1501, 70, "Post is slightly long. Ideal length is 1000-1500 characters."},
		{"long limit", 3000, 70, "Post is slightly long. Ideal length is 1000-1500 characters."},
		{"very long", 3001, 40, "Post is very long. Consider trimming to under 1500 characters."},
	}

	s := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(entity.PostContent{Body: strings.Repeat("a", tt.length)}, 3)
			assert.Equal(t, tt.want, got.LengthScore)
			if tt.suggestion == "" {
				for _, sug := range got.Suggestions {
					assert.NotRegexp(t, `^Post is (too short|very long|slightly long|\d+ characters short)`, sug)
				}
			} else {
				assert.Contains(t, got.Suggestions, tt.suggestion)
			}
		})
	}
}

func TestScorer_LengthCountsCharacters(t *testing.T) {
	s := NewScorer()

	// 1000 two-byte runes are 2000 bytes but still an ideal length
	got := s.Score(entity.PostContent{Body: strings.Repeat("é", 1000)}, 3)

	assert.Equal(t, 100.0, got.LengthScore)
}

func TestScorer_HashtagScore(t *testing.T) {
	tests := []struct {
		count      int
		want       float64
		suggestion string
	}{
		{-2, 20, "Add 3-4 relevant hashtags to increase discoverability."},
		{0, 20, "Add 3-4 relevant hashtags to increase discoverability."},
		{1, 60, "Add 2 more hashtag(s). Aim for 3-4 total."},
		{2, 60, "Add 1 more hashtag(s). Aim for 3-4 total."},
		{3, 100, ""},
		{4, 100, ""},
		{5, 80, ""},
		{6, 50, "Too many hashtags. LinkedIn recommends 3-5 maximum."},
		{30, 50, "Too many hashtags. LinkedIn recommends 3-5 maximum."},
	}

	s := NewScorer()
	for _, tt := range tests {
		got := s.Score(entity.PostContent{}, tt.count)
		assert.Equal(t, tt.want, got.HashtagScore, "count %d", tt.count)
		if tt.suggestion != "" {
			assert.Contains(t, got.Suggestions, tt.suggestion, "count %d", tt.count)
		} else {
			assert.NotContains(t, strings.Join(got.Suggestions, "|"), "hashtag", "count %d", tt.count)
		}
	}
}

func TestScorer_Readability(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
		tips []string
	}{
		{
			name: "no breaks and a long line",
			body: strings.Repeat("x", 201),
			want: 60,
			tips: []string{
				"Add more line breaks between paragraphs for better readability.",
				"Break up long paragraphs. Keep each under 200 characters.",
			},
		},
		{
			name: "short lines without paragraphs",
			body: "one\ntwo\nthree",
			want: 80,
			tips: []string{"Add more line breaks between paragraphs for better readability."},
		},
		{
			name: "paragraphs and short lines",
			body: "a\n\nb\n\nc\n\nd",
			want: 100,
		},
		{
			name: "list bonus is clamped",
			body: "intro\n\n1. first\n\n- second\n\n* third",
			want: 100,
		},
		{
			name: "bullet list without paragraphs",
			body: "intro\n   • point",
			want: 90,
			tips: []string{"Add more line breaks between paragraphs for better readability."},
		},
		{
			name: "blank lines are ignored for length",
			body: "a\n\n" + strings.Repeat(" ", 300) + "\n\nb\n\nc",
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tips := scoreReadability(tt.body)
			assert.Equal(t, tt.want, score)
			assert.Equal(t, tt.tips, tips)
		})
	}
}

func TestScorer_Hook(t *testing.T) {
	tests := []struct {
		name string
		hook string
		want float64
		tips int
	}{
		{"empty", "", 0, 1},
		{"short without punctuation", "Hi", 60, 2},
		{"short question", "Why?", 85, 1},
		{"power word and colon", "Here is the secret to hiring well:", 100, 0},
		{"power word is case insensitive", "WHY does nobody talk about this?", 100, 0},
		{"long statement", strings.Repeat("word ", 40), 65, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tips := scoreHook(tt.hook)
			assert.Equal(t, tt.want, score)
			assert.Len(t, tips, tt.tips)
		})
	}
}

func TestScorer_CTA(t *testing.T) {
	tests := []struct {
		name string
		cta  string
		want float64
		tips []string
	}{
		{"empty", "", 0, []string{"Add a call to action to drive engagement."}},
		{"action without question", "Follow me for more", 80, []string{"Ask a question in your CTA to encourage responses."}},
		{"question without action", "Any questions?", 70, []string{"Include an action word in your CTA (share, comment, follow)."}},
		{"action and question", "Thoughts? Drop them below", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tips := scoreCTA(tt.cta)
			assert.Equal(t, tt.want, score)
			assert.Equal(t, tt.tips, tips)
		})
	}
}

func TestScorer_StrongPost(t *testing.T) {
	s := NewScorer()

	got := s.Score(entity.PostContent{
		Body:         strings.Repeat("A", 1200),
		Hook:         "Learn this secret about AI:",
		CallToAction: "Share your thoughts?",
	}, 4)

	assert.Greater(t, got.Overall, 80.0)
	assert.Equal(t, 90.0, got.Overall)
	assert.Equal(t, 100.0, got.HookScore)
	assert.Equal(t, 100.0, got.CTAScore)
	assert.Equal(t, 60.0, got.ReadabilityScore)
}

func TestScorer_EmptyContent(t *testing.T) {
	s := NewScorer()

	got := s.Score(entity.PostContent{}, 0)

	assert.Equal(t, 27.0, got.Overall)
	assert.Equal(t, []string{
		"Post is too short. Aim for 1000-1500 characters.",
		"Add 3-4 relevant hashtags to increase discoverability.",
		"Add more line breaks between paragraphs for better readability.",
		"Add a compelling opening hook to grab attention.",
		"Add a call to action to drive engagement.",
	}, got.Suggestions)
}

func TestScorer_NoSuggestionsIsEmptyList(t *testing.T) {
	s := NewScorer()
	body := strings.Repeat("Short line of text here.\n\n", 45)

	got := s.Score(entity.PostContent{
		Body:         body,
		Hook:         "The mistake most teams make:",
		CallToAction: "Would you share yours?",
	}, 3)

	require.NotNil(t, got.Suggestions)
	assert.Empty(t, got.Suggestions)
}

func TestScorer_OverallIsWeightedSum(t *testing.T) {
	s := NewScorer()
	d := NewDrafter()

	for _, tone := range entity.Tones {
		for _, count := range []int{0, 1, 2, 3, 4, 5, 9} {
			content := d.Draft("distributed systems", string(tone))
			got := s.Score(content, count)

			recomputed := got.LengthScore*entity.WeightLength +
				got.HashtagScore*entity.WeightHashtag +
				got.ReadabilityScore*entity.WeightReadability +
				got.HookScore*entity.WeightHook +
				got.CTAScore*entity.WeightCTA

			assert.InDelta(t, recomputed, got.Overall, 0.1, "tone %s count %d", tone, count)
			for _, v := range []float64{got.Overall, got.LengthScore, got.HashtagScore, got.ReadabilityScore, got.HookScore, got.CTAScore} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 100.0)
				assert.Equal(t, v, math.Round(v*10)/10)
			}
		}
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 72.2, round1(72.25))
	assert.Equal(t, 72.3, round1(72.35))
	assert.Equal(t, 58.0, round1(58.0))
	assert.Equal(t, 66.7, round1(66.66666))
}

func TestWeightsSumToOne(t *testing.T) {
	sum := entity.WeightLength + entity.WeightHashtag + entity.WeightReadability + entity.WeightHook + entity.WeightCTA
	assert.InDelta(t, 1.0, sum, 1e-9)
}
