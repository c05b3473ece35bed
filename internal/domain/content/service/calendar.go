package service

import (
	"fmt"
	"time"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

const (
	// DefaultPostsPerWeek is the cadence used when the caller gives none
	DefaultPostsPerWeek = 3

	calendarConfidence = 0.85
)

var contentTypes = []string{
	"thought-leadership",
	"how-to",
	"story",
	"poll",
	"listicle",
	"case-study",
}

var calendarHours = []int{9, 10, 12}

// CalendarPlanner spreads topics over Tuesday, Wednesday and Thursday slots
type CalendarPlanner struct {
	now func() time.Time
}

// NewCalendarPlanner creates a new calendar planner using the wall clock
func NewCalendarPlanner() *CalendarPlanner {
	return &CalendarPlanner{now: time.Now}
}

// WithClock returns a copy of the planner that reads the current time from now
func (p *CalendarPlanner) WithClock(now func() time.Time) *CalendarPlanner {
	return &CalendarPlanner{now: now}
}

// Plan returns one entry per topic in input order. A nil start means now in UTC.
// Every entry lands on an optimal weekday; consecutive entries are spaced by the
// cadence gap (2 days at 3+ posts per week, 3 at 2, 7 otherwise).
func (p *CalendarPlanner) Plan(topics []string, start *time.Time, postsPerWeek int) []entity.CalendarEntry {
	var current time.Time
	if start != nil {
		current = *start
	} else {
		current = p.now().UTC()
	}
	current = nextOptimalDay(current)

	entries := make([]entity.CalendarEntry, 0, len(topics))
	for i, topic := range topics {
		contentType := contentTypes[i%len(contentTypes)]
		hour := calendarHours[i%len(calendarHours)]

		entries = append(entries, entity.CalendarEntry{
			Date:        time.Date(current.Year(), current.Month(), current.Day(), hour, 0, 0, 0, current.Location()),
			Topic:       topic,
			ContentType: contentType,
			PostingTime: entity.OptimalPostingTime{
				Day:        current.Weekday().String(),
				Hour:       hour,
				Confidence: calendarConfidence,
				Reason:     fmt.Sprintf("Optimal slot for %s content.", contentType),
			},
		})

		current = nextOptimalDay(current.AddDate(0, 0, cadenceGap(postsPerWeek)))
	}
	return entries
}

func cadenceGap(postsPerWeek int) int {
	switch {
	case postsPerWeek >= 3:
		return 2
	case postsPerWeek == 2:
		return 3
	default:
		return 7
	}
}

// IsOptimalDay reports whether d is a Tuesday, Wednesday or Thursday
func IsOptimalDay(d time.Weekday) bool {
	return d == time.Tuesday || d == time.Wednesday || d == time.Thursday
}

func nextOptimalDay(t time.Time) time.Time {
	for !IsOptimalDay(t.Weekday()) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
