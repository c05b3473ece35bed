package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarPlanner_Plan(t *testing.T) {
	p := NewCalendarPlanner()
	// Monday
	start := time.Date(2025, time.January, 6, 10, 30, 15, 500, time.UTC)

	got := p.Plan([]string{"T1", "T2", "T3", "T4"}, &start, 3)

	require.Len(t, got, 4)

	want := []struct {
		date        time.Time
		contentType string
		day         string
	}{
		{time.Date(2025, time.January, 7, 9, 0, 0, 0, time.UTC), "thought-leadership", "Tuesday"},
		{time.Date(2025, time.January, 9, 10, 0, 0, 0, time.UTC), "how-to", "Thursday"},
		{time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC), "story", "Tuesday"},
		{time.Date(2025, time.January, 16, 9, 0, 0, 0, time.UTC), "poll", "Thursday"},
	}
	for i, w := range want {
		assert.True(t, w.date.Equal(got[i].Date), "entry %d: got %s", i, got[i].Date)
		assert.Equal(t, fmt.Sprintf("T%d", i+1), got[i].Topic)
		assert.Equal(t, w.contentType, got[i].ContentType)
		assert.Equal(t, w.day, got[i].PostingTime.Day)
		assert.Equal(t, got[i].Date.Hour(), got[i].PostingTime.Hour)
		assert.Equal(t, 0.85, got[i].PostingTime.Confidence)
		assert.Equal(t, "Optimal slot for "+w.contentType+" content.", got[i].PostingTime.Reason)
	}
}

func TestCalendarPlanner_WeeklyCadence(t *testing.T) {
	p := NewCalendarPlanner()
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

	got := p.Plan([]string{"T1", "T2"}, &start, 1)

	require.Len(t, got, 2)
	assert.GreaterOrEqual(t, daysBetween(got[0].Date, got[1].Date), 7)
	for _, e := range got {
		assert.True(t, IsOptimalDay(e.Date.Weekday()))
	}
}

func TestCalendarPlanner_StartOnOptimalDayIsInclusive(t *testing.T) {
	p := NewCalendarPlanner()
	// Wednesday
	start := time.Date(2025, time.January, 8, 18, 0, 0, 0, time.UTC)

	got := p.Plan([]string{"only"}, &start, 3)

	require.Len(t, got, 1)
	assert.Equal(t, 8, got[0].Date.Day())
	assert.Equal(t, 9, got[0].Date.Hour())
}

func TestCalendarPlanner_DefaultsToClock(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)

	// Saturday afternoon in New York is still Saturday in UTC
	now := time.Date(2025, time.January, 11, 15, 0, 0, 0, ny)
	p := NewCalendarPlanner().WithClock(func() time.Time { return now })

	got := p.Plan([]string{"a"}, nil, 3)

	require.Len(t, got, 1)
	assert.Equal(t, time.UTC, got[0].Date.Location())
	assert.True(t, time.Date(2025, time.January, 14, 9, 0, 0, 0, time.UTC).Equal(got[0].Date))
}

func TestCalendarPlanner_KeepsStartLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	start := time.Date(2025, time.March, 3, 8, 0, 0, 0, tokyo)

	got := NewCalendarPlanner().Plan([]string{"a"}, &start, 3)

	require.Len(t, got, 1)
	assert.Equal(t, tokyo, got[0].Date.Location())
	assert.Equal(t, time.Tuesday, got[0].Date.Weekday())
}

func TestCalendarPlanner_Empty(t *testing.T) {
	got := NewCalendarPlanner().Plan(nil, nil, 3)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCalendarPlanner_Invariants(t *testing.T) {
	p := NewCalendarPlanner()
	topics := make([]string, 12)
	for i := range topics {
		topics[i] = fmt.Sprintf("topic %d", i)
	}

	cadences := map[int]int{0: 7, 1: 7, 2: 3, 3: 2, 5: 2, 7: 2}
	for offset := 0; offset < 14; offset++ {
		start := time.Date(2025, time.June, 1, 7, 45, 0, 0, time.UTC).AddDate(0, 0, offset)
		for perWeek, minGap := range cadences {
			got := p.Plan(topics, &start, perWeek)
			require.Len(t, got, len(topics))

			for i, e := range got {
				assert.True(t, IsOptimalDay(e.Date.Weekday()), "weekday %s", e.Date.Weekday())
				assert.Equal(t, e.Date.Weekday().String(), e.PostingTime.Day)
				assert.Contains(t, []int{9, 10, 12}, e.Date.Hour())
				assert.Zero(t, e.Date.Minute())
				assert.Zero(t, e.Date.Second())
				assert.Zero(t, e.Date.Nanosecond())
				assert.Equal(t, topics[i], e.Topic)
				if i > 0 {
					assert.GreaterOrEqual(t, daysBetween(got[i-1].Date, e.Date), minGap)
				}
			}
		}
	}
}

// daysBetween counts calendar days between the dates of a and b, ignoring the hour
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
