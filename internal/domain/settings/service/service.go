package service

import (
	"context"

	content "github.com/vadim/linkedin-mcp/internal/domain/content/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/settings/dao"
	"github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
)

// Service handles user settings
type Service struct {
	repo dao.SettingsRepository
}

// New creates a new settings service
func New(repo dao.SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the current settings
func (s *Service) Get(ctx context.Context) (*entity.Settings, error) {
	return s.repo.Load(ctx)
}

// DefaultTone returns the tone used for drafts created without one
func (s *Service) DefaultTone(ctx context.Context) (content.Tone, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	return settings.DefaultTone, nil
}

// SetDefaultTone validates and persists a new default tone
func (s *Service) SetDefaultTone(ctx context.Context, tone string) (*entity.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := settings.SetDefaultTone(tone); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
