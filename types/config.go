/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Quiet     bool            `mapstructure:"quiet"`
	JSON      bool            `mapstructure:"json"`
	Offline   bool            `mapstructure:"offline"`
	Config    string          `mapstructure:"config"`
	API       APIConfig       `mapstructure:"api" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"`
	View      ViewConfig      `mapstructure:"view"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// APIConfig holds settings for the task backend.
type APIConfig struct {
	BaseURL   string        `mapstructure:"baseURL" yaml:"baseURL" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
	UserAgent string        `mapstructure:"userAgent" yaml:"userAgent,omitempty"`
}

// CacheConfig controls the local snapshot of the last confirmed state.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path,omitempty"` // empty means <config dir>/cache
}

// ViewConfig holds list defaults.
type ViewConfig struct {
	ShowCompleted bool   `mapstructure:"showCompleted" yaml:"showCompleted"`
	SortBy        string `mapstructure:"sortBy" yaml:"sortBy" validate:"omitempty,oneof=dueDate -dueDate createdAt -createdAt priority -priority title -title"`
	Priority      string `mapstructure:"priority" yaml:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	File string `mapstructure:"file" yaml:"file,omitempty"`
}

// TelemetryConfig holds opt-in usage telemetry settings.
type TelemetryConfig struct {
	Disabled bool   `mapstructure:"disabled" yaml:"disabled"`
	APIKey   string `mapstructure:"apiKey" yaml:"apiKey,omitempty"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
}
