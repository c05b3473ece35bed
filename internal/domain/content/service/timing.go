package service

import (
	"fmt"
	"strings"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

// DefaultRecommendations is the number of slots returned when the caller does not ask for a count
const DefaultRecommendations = 3

type postingSlot struct {
	day        string
	hour       int
	confidence float64
	reason     string
}

// optimalSlots is ordered by descending confidence
var optimalSlots = []postingSlot{
	{"Tuesday", 9, 0.92, "Peak LinkedIn activity: professionals check feeds after morning meetings."},
	{"Wednesday", 10, 0.90, "Mid-week engagement peak: highest comment and share rates."},
	{"Thursday", 12, 0.88, "Lunch break browsing: strong engagement during midday pause."},
	{"Tuesday", 13, 0.85, "Early afternoon: decision-makers active before end-of-day wrap-up."},
	{"Wednesday", 9, 0.84, "Morning professional browsing window on LinkedIn's busiest day."},
	{"Thursday", 10, 0.82, "Pre-weekend planning: professionals seek insights for the week ahead."},
}

var industryHourShift = map[string]int{
	"technology": 0,
	"finance":    -1,
	"healthcare": 1,
	"marketing":  0,
	"startup":    1,
	"default":    0,
}

// TimingRecommender ranks weekly posting slots
type TimingRecommender struct{}

// NewTimingRecommender creates a new posting-time recommender
func NewTimingRecommender() *TimingRecommender {
	return &TimingRecommender{}
}

// Recommend returns up to count slots in descending confidence, shifted by the
// industry's hour adjustment. The timezone is only echoed in the reason text.
func (r *TimingRecommender) Recommend(timezone, industry string, count int) []entity.OptimalPostingTime {
	if timezone == "" {
		timezone = "UTC"
	}
	count = max(0, min(count, len(optimalSlots)))
	shift := industryHourShift[strings.ToLower(industry)]

	out := make([]entity.OptimalPostingTime, 0, count)
	for _, slot := range optimalSlots[:count] {
		out = append(out, entity.OptimalPostingTime{
			Day:        slot.day,
			Hour:       max(0, min(23, slot.hour+shift)),
			Confidence: slot.confidence,
			Reason:     fmt.Sprintf("%s (Timezone: %s)", slot.reason, timezone),
		})
	}
	return out
}
