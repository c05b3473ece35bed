package entity

// Statistics represents post counts per lifecycle state
type Statistics struct {
	Total          int     `json:"total"`
	DraftCount     int     `json:"draft_count"`
	ScheduledCount int     `json:"scheduled_count"`
	PublishedCount int     `json:"published_count"`
	FailedCount    int     `json:"failed_count"`
	AverageScore   float64 `json:"average_score"` // mean overall score of scored posts
	ScoredCount    int     `json:"scored_count"`
}

// Add counts a post into the statistics
func (s *Statistics) Add(p *Post) {
	s.Total++
	switch p.Status {
	case StatusDraft:
		s.DraftCount++
	case StatusScheduled:
		s.ScheduledCount++
	case StatusPublished:
		s.PublishedCount++
	case StatusFailed:
		s.FailedCount++
	}
	if p.EngagementScore != nil {
		s.AverageScore = (s.AverageScore*float64(s.ScoredCount) + p.EngagementScore.Overall) / float64(s.ScoredCount+1)
		s.ScoredCount++
	}
}
