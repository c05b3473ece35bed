package dao

import (
	"context"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
)

// CredentialsRepository defines the interface for credential persistence
type CredentialsRepository interface {
	// Load returns nil, nil when no credentials are stored
	Load(ctx context.Context) (*entity.Credentials, error)
	Save(ctx context.Context, c *entity.Credentials) error
	Delete(ctx context.Context) error
}
