package dao

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/vadim/linkedin-mcp/internal/domain/settings/entity"
	"github.com/vadim/linkedin-mcp/internal/storage/jsonfile"
)

// SettingsFile is the file name of the settings document inside the data directory
const SettingsFile = "config.json"

// SettingsJSON implements SettingsRepository on a JSON file
type SettingsJSON struct {
	path string
	mu   sync.Mutex
}

// NewSettingsJSON creates a settings repository under dataDir
func NewSettingsJSON(dataDir string) *SettingsJSON {
	return &SettingsJSON{path: filepath.Join(dataDir, SettingsFile)}
}

// Load reads the settings file
func (r *SettingsJSON) Load(ctx context.Context) (*entity.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := entity.Default()
	if _, err := jsonfile.Load(r.path, &s); err != nil {
		return nil, err
	}
	s.Normalize()

	return &s, nil
}

// Save writes the settings file
func (r *SettingsJSON) Save(ctx context.Context, s *entity.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return jsonfile.Save(r.path, s, 0600)
}
