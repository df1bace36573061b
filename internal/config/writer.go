package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned when a config file is already present and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// fileConfig is the on-disk layout of the config file.
type fileConfig struct {
	API       types.APIConfig       `yaml:"api"`
	Cache     types.CacheConfig     `yaml:"cache"`
	View      types.ViewConfig      `yaml:"view"`
	Logging   types.LoggingConfig   `yaml:"logging,omitempty"`
	Telemetry types.TelemetryConfig `yaml:"telemetry"`
}

const configHeader = "# TaskBoard configuration\n# Every key can be overridden with TASKBOARD_<SECTION>_<KEY>.\n\n"

// RenderConfig renders cfg as the YAML written by WriteConfigFile.
func RenderConfig(cfg types.AppConfig) ([]byte, error) {
	body, err := yaml.Marshal(fileConfig{
		API:       cfg.API,
		Cache:     cfg.Cache,
		View:      cfg.View,
		Logging:   cfg.Logging,
		Telemetry: cfg.Telemetry,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return append([]byte(configHeader), body...), nil
}

// WriteConfigFile writes cfg to path on fs. An existing file is kept
// unless force is set.
func WriteConfigFile(fs afero.Fs, path string, cfg types.AppConfig, force bool) error {
	if path == "" {
		return fmt.Errorf("config path cannot be empty")
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("check config file: %w", err)
	}
	if exists && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := RenderConfig(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	// may carry a telemetry key
	if err := afero.WriteFile(fs, path, data, os.FileMode(0o600)); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
