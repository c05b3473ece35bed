package dao

import (
	"encoding/json"
	"fmt"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
)

// documentColumns holds the nested values of a post serialised for SQL storage
type documentColumns struct {
	content  []byte
	hashtags []byte
	score    []byte // nil when the post has not been scored
}

func encodeDocuments(p *entity.Post) (documentColumns, error) {
	var cols documentColumns
	var err error

	if cols.content, err = json.Marshal(p.Content); err != nil {
		return cols, fmt.Errorf("encoding content: %w", err)
	}

	hashtags := p.Hashtags
	if hashtags == nil {
		hashtags = []content.Hashtag{}
	}
	if cols.hashtags, err = json.Marshal(hashtags); err != nil {
		return cols, fmt.Errorf("encoding hashtags: %w", err)
	}

	if p.EngagementScore != nil {
		if cols.score, err = json.Marshal(p.EngagementScore); err != nil {
			return cols, fmt.Errorf("encoding engagement score: %w", err)
		}
	}

	return cols, nil
}

func decodeDocuments(p *entity.Post, cols documentColumns) error {
	if err := json.Unmarshal(cols.content, &p.Content); err != nil {
		return fmt.Errorf("decoding content: %w", err)
	}
	if len(cols.hashtags) > 0 {
		if err := json.Unmarshal(cols.hashtags, &p.Hashtags); err != nil {
			return fmt.Errorf("decoding hashtags: %w", err)
		}
	}
	if len(p.Hashtags) == 0 {
		p.Hashtags = nil
	}
	if len(cols.score) > 0 {
		var score content.EngagementScore
		if err := json.Unmarshal(cols.score, &score); err != nil {
			return fmt.Errorf("decoding engagement score: %w", err)
		}
		p.EngagementScore = &score
	}
	return nil
}
