package service

import (
	"strings"
	"unicode/utf8"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

const (
	defaultIndustry = "default"
	maxNicheStem    = 20
)

var industryHashtags = map[string][]string{
	"technology": {"Technology", "Tech", "Innovation", "Digital", "Software"},
	"marketing":  {"Marketing", "DigitalMarketing", "ContentMarketing", "Branding", "SEO"},
	"leadership": {"Leadership", "Management", "ExecutiveLeadership", "LeadershipDevelopment"},
	"career":     {"CareerDevelopment", "CareerGrowth", "JobSearch", "ProfessionalDevelopment"},
	"startup":    {"Startup", "Entrepreneurship", "StartupLife", "VentureCapital", "Founders"},
	"ai":         {"ArtificialIntelligence", "MachineLearning", "AI", "DeepLearning", "GenerativeAI"},
	"finance":    {"Finance", "FinTech", "Investment", "Banking", "FinancialServices"},
	"healthcare": {"Healthcare", "HealthTech", "DigitalHealth", "MedTech"},
	"default":    {"Business", "Innovation", "Growth", "Strategy", "ProfessionalDevelopment"},
}

var trendingHashtags = []string{
	"FutureOfWork",
	"RemoteWork",
	"AIInBusiness",
	"Sustainability",
	"DEI",
	"PersonalBranding",
	"ThoughtLeadership",
	"WorkLifeBalance",
}

var nicheSuffixes = []string{"Tips", "Insights", "Trends", "Strategy", "Community"}

var broadHashtags = []string{"LinkedIn", "Networking", "Success", "Motivation", "Learning"}

// HashtagCurator builds a balanced hashtag set for a topic
type HashtagCurator struct{}

// NewHashtagCurator creates a new hashtag curator
func NewHashtagCurator() *HashtagCurator {
	return &HashtagCurator{}
}

// Suggest returns exactly four hashtags ordered industry, trending, niche, broad
func (c *HashtagCurator) Suggest(topic, industry string) []entity.Hashtag {
	return []entity.Hashtag{
		{Name: "#" + industryTag(industry), Category: entity.HashtagCategoryIndustry},
		{Name: "#" + trendingTag(topic), Category: entity.HashtagCategoryTrending},
		{Name: "#" + nicheTag(topic), Category: entity.HashtagCategoryNiche},
		{Name: "#" + broadHashtags[0], Category: entity.HashtagCategoryBroad},
	}
}

func industryTag(industry string) string {
	tags, ok := industryHashtags[strings.ToLower(industry)]
	if !ok {
		tags = industryHashtags[defaultIndustry]
	}
	return tags[0]
}

// trendingTag picks the first trending tag with a whitespace-separated word
// contained in the topic. Tags are single compounds, so only whole compounds match.
func trendingTag(topic string) string {
	lower := strings.ToLower(topic)
	for _, tag := range trendingHashtags {
		for _, word := range strings.Fields(strings.ToLower(tag)) {
			if strings.Contains(lower, word) {
				return tag
			}
		}
	}
	return trendingHashtags[0]
}

func nicheTag(topic string) string {
	stem := []rune(strings.ReplaceAll(topic, " ", ""))
	if len(stem) > maxNicheStem {
		stem = stem[:maxNicheStem]
	}
	suffix := nicheSuffixes[utf8.RuneCountInString(topic)%len(nicheSuffixes)]
	return string(stem) + suffix
}
