package service

import (
	"fmt"
	"strings"

	"github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

type toneTemplate struct {
	hookPrefix string
	cta        string
	// lead is an extra opening sentence; %s is replaced by the topic
	lead string
}

var toneTemplates = map[entity.Tone]toneTemplate{
	entity.ToneProfessional: {
		hookPrefix: "Here's what I've learned about",
		cta:        "What's your experience with this? Share in the comments.",
	},
	entity.ToneCasual: {
		hookPrefix: "Let me tell you something about",
		cta:        "Thoughts? Drop them below 👇",
	},
	entity.ToneInspirational: {
		hookPrefix: "The most powerful lesson I've learned about",
		cta:        "If this resonates, share it with someone who needs to hear it.",
	},
	entity.ToneEducational: {
		hookPrefix: "Most people get this wrong about",
		cta:        "Save this for later and follow for more insights.",
		lead:       "Let me break down %s into actionable steps.",
	},
	entity.ToneStorytelling: {
		hookPrefix: "I never expected this when I started with",
		cta:        "Have a similar story? I'd love to hear it.",
		lead:       "My journey with %s started unexpectedly.",
	},
}

// Drafter generates templated posts from a topic and a tone
type Drafter struct{}

// NewDrafter creates a new post drafter
func NewDrafter() *Drafter {
	return &Drafter{}
}

// Draft builds a post whose hook and call to action are lines of the body.
// An empty tone means professional. Unknown tones use the professional
// template but keep the lowercased tone.
func (d *Drafter) Draft(topic string, tone string) entity.PostContent {
	t := entity.Tone(strings.ToLower(tone))
	if t == "" {
		t = entity.ToneProfessional
	}
	tmpl, ok := toneTemplates[t]
	if !ok {
		tmpl = toneTemplates[entity.ToneProfessional]
	}

	hook := tmpl.hookPrefix + " " + topic + ":"

	lines := []string{hook, ""}
	if tmpl.lead != "" {
		lines = append(lines, fmt.Sprintf(tmpl.lead, topic), "")
	}
	lines = append(lines,
		fmt.Sprintf("When it comes to %s, there are key insights that can transform your approach.", topic),
		"",
		"Here's what matters most:",
		"",
		fmt.Sprintf("1. Understanding the fundamentals of %s is essential.", topic),
		fmt.Sprintf("2. Applying %s consistently leads to measurable results.", topic),
		fmt.Sprintf("3. The best practitioners of %s never stop learning.", topic),
		"",
		tmpl.cta,
	)

	return entity.PostContent{
		Body:         strings.Join(lines, "\n"),
		Hook:         hook,
		CallToAction: tmpl.cta,
		Tone:         t,
	}
}
