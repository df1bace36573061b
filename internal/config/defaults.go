// Package config provides centralized configuration constants for TaskBoard.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"time"

	"github.com/josephgoksu/TaskBoard/types"
)

const (
	// DefaultAPIBaseURL is where the backend listens unless configured.
	DefaultAPIBaseURL = "http://localhost:3000"

	// DefaultAPITimeout bounds every backend request.
	DefaultAPITimeout = 10 * time.Second

	// DefaultSortBy is the list ordering used when none is configured.
	DefaultSortBy = "dueDate"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = ".taskboard"

	// EnvPrefix prefixes every environment override (TASKBOARD_API_BASEURL).
	EnvPrefix = "TASKBOARD"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() types.AppConfig {
	return types.AppConfig{
		API: types.APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultAPITimeout,
		},
		Cache: types.CacheConfig{Enabled: true},
		View: types.ViewConfig{
			ShowCompleted: true,
			SortBy:        DefaultSortBy,
		},
		Telemetry: types.TelemetryConfig{Disabled: true},
	}
}
