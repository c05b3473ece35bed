package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

const (
	idealLengthMin   = 1000
	idealLengthMax   = 1500
	shortLengthLimit = 200
	longLengthLimit  = 3000
	maxLineLength    = 200
	minParagraphs    = 3
	minHookLength    = 20
	maxHookLength    = 150
)

var (
	powerWords  = []string{"learn", "discover", "secret", "mistake", "never", "always", "most", "why"}
	actionWords = []string{"share", "comment", "follow", "save", "like", "tell", "drop", "thoughts"}
)

// Scorer rates post content across length, hashtags, readability, hook and call to action
type Scorer struct{}

// NewScorer creates a new engagement scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates content published with hashtagCount hashtags.
// It never fails; negative counts are treated as zero.
func (s *Scorer) Score(content entity.PostContent, hashtagCount int) entity.EngagementScore {
	if hashtagCount < 0 {
		hashtagCount = 0
	}

	var suggestions []string

	length, tips := scoreLength(content.Body)
	suggestions = append(suggestions, tips...)

	hashtags, tips := scoreHashtags(hashtagCount)
	suggestions = append(suggestions, tips...)

	readability, tips := scoreReadability(content.Body)
	suggestions = append(suggestions, tips...)

	hook, tips := scoreHook(content.Hook)
	suggestions = append(suggestions, tips...)

	cta, tips := scoreCTA(content.CallToAction)
	suggestions = append(suggestions, tips...)

	overall := length*entity.WeightLength +
		hashtags*entity.WeightHashtag +
		readability*entity.WeightReadability +
		hook*entity.WeightHook +
		cta*entity.WeightCTA

	if suggestions == nil {
		suggestions = []string{}
	}

	return entity.EngagementScore{
		Overall:          round1(overall),
		LengthScore:      round1(length),
		HashtagScore:     round1(hashtags),
		ReadabilityScore: round1(readability),
		HookScore:        round1(hook),
		CTAScore:         round1(cta),
		Suggestions:      suggestions,
	}
}

func scoreLength(body string) (float64, []string) {
	n := utf8.RuneCountInString(body)

	switch {
	case n >= idealLengthMin && n <= idealLengthMax:
		return 100, nil
	case n < shortLengthLimit:
		return 20, []string{"Post is too short. Aim for 1000-1500 characters."}
	case n < idealLengthMin:
		score := 50 + float64(n)/float64(idealLengthMin)*40
		return score, []string{fmt.Sprintf("Post is %d characters short of ideal length.", idealLengthMin-n)}
	case n > longLengthLimit:
		return 40, []string{"Post is very long. Consider trimming to under 1500 characters."}
	default:
		return 70, []string{"Post is slightly long. Ideal length is 1000-1500 characters."}
	}
}

func scoreHashtags(count int) (float64, []string) {
	switch {
	case count >= 3 && count <= 4:
		return 100, nil
	case count == 0:
		return 20, []string{"Add 3-4 relevant hashtags to increase discoverability."}
	case count < 3:
		return 60, []string{fmt.Sprintf("Add %d more hashtag(s). Aim for 3-4 total.", 3-count)}
	case count > 5:
		return 50, []string{"Too many hashtags. LinkedIn recommends 3-5 maximum."}
	default:
		return 80, nil
	}
}

func scoreReadability(body string) (float64, []string) {
	var tips []string
	score := 60.0

	if strings.Count(body, "\n\n") >= minParagraphs {
		score += 20
	} else {
		tips = append(tips, "Add more line breaks between paragraphs for better readability.")
	}

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	longLine := false
	for _, line := range lines {
		if utf8.RuneCountInString(line) > maxLineLength {
			longLine = true
			break
		}
	}
	if !longLine {
		score += 20
	} else {
		tips = append(tips, "Break up long paragraphs. Keep each under 200 characters.")
	}

	for _, line := range lines {
		if isListItem(line) {
			score += 10
			break
		}
	}

	return min(score, 100), tips
}

// isListItem reports whether line starts with a digit, bullet, dash or asterisk
func isListItem(line string) bool {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(trimmed)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsDigit(r) || r == '•' || r == '-' || r == '*'
}

func scoreHook(hook string) (float64, []string) {
	if hook == "" {
		return 0, []string{"Add a compelling opening hook to grab attention."}
	}

	var tips []string
	score := 50.0
	n := utf8.RuneCountInString(hook)

	if n >= minHookLength {
		score += 15
	} else {
		tips = append(tips, "Make your hook longer and more compelling.")
	}
	if n <= maxHookLength {
		score += 10
	}
	if containsAny(strings.ToLower(hook), powerWords) {
		score += 15
	}
	if strings.HasSuffix(hook, ":") || strings.HasSuffix(hook, "?") {
		score += 10
	} else {
		tips = append(tips, "End your hook with ':' or '?' to create curiosity.")
	}

	return min(score, 100), tips
}

func scoreCTA(cta string) (float64, []string) {
	if cta == "" {
		return 0, []string{"Add a call to action to drive engagement."}
	}

	var tips []string
	score := 50.0

	if containsAny(strings.ToLower(cta), actionWords) {
		score += 30
	} else {
		tips = append(tips, "Include an action word in your CTA (share, comment, follow).")
	}
	if strings.Contains(cta, "?") {
		score += 20
	} else {
		tips = append(tips, "Ask a question in your CTA to encourage responses.")
	}

	return min(score, 100), tips
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// round1 rounds to one decimal place, ties to even on the exact decimal value
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
