package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SetDefaultToneInput represents input for the set_default_tone tool
type SetDefaultToneInput struct {
	Tone string `json:"tone" jsonschema:"professional, casual, inspirational, educational or storytelling"`
}

func (s *Server) registerSettingsTools() {
	addTool(s, &sdkmcp.Tool{
		Name:        "get_config",
		Description: "Get the current configuration: the default tone and the valid tone options.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		return cfg.View(), nil
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "set_default_tone",
		Description: "Set the tone used by draft_post when no tone is given. The preference is persisted.",
	}, func(ctx context.Context, in SetDefaultToneInput) (any, error) {
		cfg, err := s.settings.SetDefaultTone(ctx, in.Tone)
		if err != nil {
			return nil, err
		}
		return cfg.View(), nil
	})
}
