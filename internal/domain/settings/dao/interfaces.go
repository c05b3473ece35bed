package dao

import (
	"context"

	"github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
)

// SettingsRepository defines the interface for settings persistence
type SettingsRepository interface {
	// Load returns the stored settings, or the defaults when none were saved
	Load(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, s *entity.Settings) error
}
