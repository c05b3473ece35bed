package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	"github.com/vadim/linkedin-mcp/internal/storage/jsonfile"
)

// CredentialsFile is the file name of the token store inside the data directory
const CredentialsFile = "credentials.json"

// CredentialsJSON implements CredentialsRepository on an owner-only JSON file
type CredentialsJSON struct {
	path string
	mu   sync.Mutex
}

// NewCredentialsJSON creates a credentials repository under dataDir
func NewCredentialsJSON(dataDir string) *CredentialsJSON {
	return &CredentialsJSON{path: filepath.Join(dataDir, CredentialsFile)}
}

// Load reads stored credentials
func (r *CredentialsJSON) Load(ctx context.Context) (*entity.Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var c entity.Credentials
	found, err := jsonfile.Load(r.path, &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// Save writes credentials readable by the owner only
func (r *CredentialsJSON) Save(ctx context.Context, c *entity.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return jsonfile.Save(r.path, c, 0600)
}

// Delete removes stored credentials
func (r *CredentialsJSON) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
