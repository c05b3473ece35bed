package entity

import (
	"time"
)

// Tone selects the drafting template used to generate a post
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneInspirational Tone = "inspirational"
	ToneEducational   Tone = "educational"
	ToneStorytelling  Tone = "storytelling"
)

// Tones lists every recognised tone in alphabetical order
var Tones = []Tone{
	ToneCasual,
	ToneEducational,
	ToneInspirational,
	ToneProfessional,
	ToneStorytelling,
}

// IsValid reports whether t is one of the recognised tones
func (t Tone) IsValid() bool {
	for _, v := range Tones {
		if t == v {
			return true
		}
	}
	return false
}

// PostContent is the text of a post split into its addressable parts.
// When produced by the drafter, Hook and CallToAction are substrings of Body.
type PostContent struct {
	Body         string `json:"body"`
	Hook         string `json:"hook"`
	CallToAction string `json:"call_to_action"`
	Tone         Tone   `json:"tone"`
}

// EngagementScore is the weighted evaluation of a post
type EngagementScore struct {
	Overall          float64  `json:"overall"`
	LengthScore      float64  `json:"length_score"`
	HashtagScore     float64  `json:"hashtag_score"`
	ReadabilityScore float64  `json:"readability_score"`
	HookScore        float64  `json:"hook_score"`
	CTAScore         float64  `json:"cta_score"`
	Suggestions      []string `json:"suggestions"`
}

// Dimension weights of the overall score
const (
	WeightLength      = 0.20
	WeightHashtag     = 0.15
	WeightReadability = 0.25
	WeightHook        = 0.25
	WeightCTA         = 0.15
)

// HashtagCategory is the reach bucket a hashtag belongs to
type HashtagCategory string

const (
	HashtagCategoryIndustry HashtagCategory = "industry"
	HashtagCategoryTrending HashtagCategory = "trending"
	HashtagCategoryNiche    HashtagCategory = "niche"
	HashtagCategoryBroad    HashtagCategory = "broad"
)

// Hashtag is a single suggested tag. Name always starts with "#".
type Hashtag struct {
	Name     string          `json:"name"`
	Category HashtagCategory `json:"category"`
}

// OptimalPostingTime is a recommended weekly publishing slot
type OptimalPostingTime struct {
	Day        string  `json:"day"`
	Hour       int     `json:"hour"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// CalendarEntry is one planned post of a content calendar
type CalendarEntry struct {
	Date        time.Time          `json:"date"`
	Topic       string             `json:"topic"`
	ContentType string             `json:"content_type"`
	PostingTime OptimalPostingTime `json:"posting_time"`
}
