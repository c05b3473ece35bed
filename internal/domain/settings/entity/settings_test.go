package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
)

func TestSettings_SetDefaultTone(t *testing.T) {
	tests := []struct {
		name    string
		tone    string
		want    content.Tone
		wantErr bool
	}{
		{name: "lower case", tone: "casual", want: content.ToneCasual},
		{name: "mixed case", tone: "StoryTelling", want: content.ToneStorytelling},
		{name: "padded", tone: "  educational ", want: content.ToneEducational},
		{name: "unknown", tone: "sarcastic", want: content.ToneProfessional, wantErr: true},
		{name: "empty", tone: "", want: content.ToneProfessional, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			err := s.SetDefaultTone(tt.tone)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTone)
				assert.Contains(t, err.Error(), "casual, educational, inspirational, professional, storytelling")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, s.DefaultTone)
		})
	}
}

func TestSettings_Normalize(t *testing.T) {
	s := Settings{DefaultTone: "shouty"}
	s.Normalize()
	assert.Equal(t, content.ToneProfessional, s.DefaultTone)

	s = Settings{DefaultTone: content.ToneCasual}
	s.Normalize()
	assert.Equal(t, content.ToneCasual, s.DefaultTone)
}

func TestSettings_View(t *testing.T) {
	s := Default()
	v := s.View()

	assert.Equal(t, content.ToneProfessional, v.DefaultTone)
	assert.Equal(t, content.Tones, v.ValidTones)

	v.ValidTones[0] = "changed"
	assert.NotEqual(t, content.Tone("changed"), content.Tones[0])
}
