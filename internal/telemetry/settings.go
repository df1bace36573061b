// Package telemetry manages opt-in anonymous usage telemetry for TaskBoard.
// Nothing is sent until the user runs `taskboard telemetry enable` and an
// API key is configured.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// SettingsFileName is stored in the global config directory.
const SettingsFileName = "telemetry.json"

// Settings hold the user's choice. They live next to, not inside, the
// main config file.
type Settings struct {
	// Enabled is false until the user opts in.
	Enabled bool `json:"enabled"`

	// AnonymousID is a random UUID generated once. It is not tied to any
	// personal information.
	AnonymousID string `json:"anonymous_id"`
}

// LoadSettings reads the settings from dir. A missing file yields disabled
// settings with a fresh anonymous id.
func LoadSettings(fs afero.Fs, dir string) (*Settings, error) {
	s := &Settings{}

	data, err := afero.ReadFile(fs, filepath.Join(dir, SettingsFileName))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read telemetry settings: %w", err)
	default:
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse telemetry settings: %w", err)
		}
	}

	if s.AnonymousID == "" {
		s.AnonymousID = uuid.NewString()
	}
	return s, nil
}

// Save writes the settings to dir with owner-only permissions.
func (s *Settings) Save(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal telemetry settings: %w", err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, SettingsFileName), data, 0o600); err != nil {
		return fmt.Errorf("write telemetry settings: %w", err)
	}
	return nil
}
