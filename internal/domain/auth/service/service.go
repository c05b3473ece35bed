package service

import (
	"context"
	"time"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/dao"
	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
)

// Service manages stored LinkedIn credentials
type Service struct {
	repo dao.CredentialsRepository
	now  func() time.Time
}

// New creates a new credentials service
func New(repo dao.CredentialsRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock replaces the clock used for expiry checks
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service clock's current time in UTC
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// Credentials returns stored credentials that are still usable
func (s *Service) Credentials(ctx context.Context) (*entity.Credentials, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, entity.ErrNotAuthenticated
	}
	if c.IsExpired(s.Now()) {
		return nil, entity.ErrTokenExpired
	}
	return c, nil
}

// Save stores new credentials, replacing any previous ones
func (s *Service) Save(ctx context.Context, c *entity.Credentials) error {
	return s.repo.Save(ctx, c)
}

// Status reports whether usable credentials are stored.
// Expired credentials still report their member and expiry.
func (s *Service) Status(ctx context.Context) (*entity.Status, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &entity.Status{}, nil
	}

	expiresAt := c.ExpiresAt
	return &entity.Status{
		Authenticated: !c.IsExpired(s.Now()),
		PersonURN:     c.PersonURN,
		ExpiresAt:     &expiresAt,
	}, nil
}

// Logout removes stored credentials
func (s *Service) Logout(ctx context.Context) error {
	return s.repo.Delete(ctx)
}
