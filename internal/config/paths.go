package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.taskboard).
// This is the source of truth for where global config lives.
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskboard"), nil
}

// GetCacheBasePath returns the directory holding the snapshot cache.
// Resolution order (first match wins):
// 1. Explicit config via "cache.path" (Viper/env/flag)
// 2. Local project directory: .taskboard/cache (if exists)
// 3. XDG_CACHE_HOME/taskboard (if XDG_CACHE_HOME is set)
// 4. Global fallback: ~/.taskboard/cache
func GetCacheBasePath() string {
	if path := viper.GetString("cache.path"); path != "" {
		return path
	}

	localCache := filepath.Join(".taskboard", "cache")
	if info, err := os.Stat(localCache); err == nil && info.IsDir() {
		return localCache
	}

	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "taskboard")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./cache"
	}
	return filepath.Join(dir, "cache")
}

// GetCrashLogDir returns where crash logs are written.
func GetCrashLogDir() string {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "taskboard", "logs")
	}
	return filepath.Join(dir, "logs")
}

// DefaultConfigFilePath is where `config init` writes when no path is given.
func DefaultConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName+".yaml"), nil
}
