package entity

import (
	"fmt"
	"strings"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

// Settings holds user preferences applied when creating posts
type Settings struct {
	DefaultTone content.Tone `json:"default_tone"`
}

// Default returns the settings used before anything has been saved
func Default() Settings {
	return Settings{DefaultTone: content.ToneProfessional}
}

// SetDefaultTone changes the tone used by drafts created without one.
// Matching is case-insensitive; the stored value is lower case.
func (s *Settings) SetDefaultTone(tone string) error {
	t := content.Tone(strings.ToLower(strings.TrimSpace(tone)))
	if !t.IsValid() {
		return fmt.Errorf("%w '%s'. Valid options: %s", ErrInvalidTone, tone, ValidTones())
	}
	s.DefaultTone = t
	return nil
}

// Normalize replaces missing or unknown values with defaults
func (s *Settings) Normalize() {
	if !s.DefaultTone.IsValid() {
		s.DefaultTone = content.ToneProfessional
	}
}

// ValidTones returns the accepted tone names, comma separated
func ValidTones() string {
	names := make([]string, len(content.Tones))
	for i, t := range content.Tones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// View is the settings representation returned to clients
type View struct {
	DefaultTone content.Tone   `json:"default_tone"`
	ValidTones  []content.Tone `json:"valid_tones"`
}

// View returns the settings together with the accepted tones
func (s Settings) View() View {
	return View{
		DefaultTone: s.DefaultTone,
		ValidTones:  append([]content.Tone(nil), content.Tones...),
	}
}
