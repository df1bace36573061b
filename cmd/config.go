package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// configErr is reported by the next command instead of exiting from
// InitConfig.
var configErr error

// validate is a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value: %v)", strings.TrimPrefix(e.Namespace(), "AppConfig."), e.Tag(), e.Value()))
			}
			return fmt.Errorf("%w: invalid configuration: %s", types.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// setConfigDefaults registers every key so env overrides resolve even
// without a config file.
func setConfigDefaults() {
	d := config.Defaults()
	viper.SetDefault("api.baseURL", d.API.BaseURL)
	viper.SetDefault("api.timeout", d.API.Timeout)
	viper.SetDefault("api.userAgent", "")
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.path", "")
	viper.SetDefault("view.showCompleted", d.View.ShowCompleted)
	viper.SetDefault("view.sortBy", d.View.SortBy)
	viper.SetDefault("view.priority", "")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("telemetry.disabled", d.Telemetry.Disabled)
	viper.SetDefault("telemetry.apiKey", "")
	viper.SetDefault("telemetry.endpoint", "")
}

// InitConfig reads in config file and ENV variables if set.
// Viper is reset first so that nothing from an earlier run in the same
// process (a previous config file, stale values) leaks into this one.
func InitConfig() {
	configErr = nil
	viper.Reset()
	bindFlags()

	// It's okay if the .env file doesn't exist.
	_ = godotenv.Load()

	// Env handling must be set up before reading the config file.
	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., TASKBOARD_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // api.baseURL -> TASKBOARD_API_BASEURL
	viper.AutomaticEnv()

	setConfigDefaults()

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		projectDir := filepath.Join(".", ".taskboard")
		if _, err := os.Stat(projectDir); err == nil {
			viper.AddConfigPath(projectDir) // ./.taskboard/.taskboard.yaml
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home) // $HOME/.taskboard.yaml
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(config.ConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		LogError("Using config file: "+viper.ConfigFileUsed(), nil)
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			LogError("No config file found. Using defaults and environment variables.", nil)
		case viper.GetString("config") != "" && os.IsNotExist(err):
			configErr = fmt.Errorf("config file not found: %s", viper.GetString("config"))
			return
		default:
			configErr = fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
			return
		}
	}

	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		configErr = fmt.Errorf("unmarshal config: %w", err)
		return
	}
	if err := validateAppConfig(&cfg); err != nil {
		configErr = err
		return
	}
	GlobalAppConfig = cfg
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
