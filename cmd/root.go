/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/josephgoksu/TaskBoard/internal/logger"
	"github.com/josephgoksu/TaskBoard/internal/telemetry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.3.0"

	// appFs backs every file the CLI writes. Tests swap in a MemMapFs.
	appFs = afero.NewOsFs()

	// nowFunc is the CLI clock.
	nowFunc = time.Now

	recorder     telemetry.Recorder = telemetry.Noop{}
	logCloser    io.Closer
	commandStart time.Time
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "TaskBoard - manage your team's tasks from the terminal",
	Long: `TaskBoard is a terminal client for a TaskBoard REST backend.

It lists, filters and sorts tasks, creates and completes them, and offers an
interactive board. The last confirmed state is cached locally so you can
still read your tasks when the backend is down.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	finishCommand(err)
	if err != nil {
		PrintError(describeError(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the CLI version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskboard/.taskboard.yaml or $HOME/.taskboard.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "print only essential output")
	rootCmd.PersistentFlags().String("api", "", "backend base URL (overrides api.baseURL)")
	rootCmd.PersistentFlags().Bool("offline", false, "read from the local snapshot cache instead of the backend")

	bindFlags()
}

// bindFlags binds persistent flags to Viper
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("json", flags.Lookup("json"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("api.baseURL", flags.Lookup("api"))
	_ = viper.BindPFlag("offline", flags.Lookup("offline"))
}

// setupCommand runs before every command: it surfaces config errors and
// installs logging, crash context and telemetry.
func setupCommand(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cfg := GetConfig()

	closer, err := logger.Setup(logger.Options{Verbose: cfg.Verbose, File: cfg.Logging.File})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	logCloser = closer

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath(), args)
	logger.SetCrashDir(config.GetCrashLogDir())

	recorder = newRecorder(cfg.Telemetry.Disabled, cfg.Telemetry.APIKey, cfg.Telemetry.Endpoint)
	commandStart = nowFunc()
	return nil
}

func newRecorder(disabled bool, apiKey, endpoint string) telemetry.Recorder {
	if disabled || apiKey == "" {
		return telemetry.Noop{}
	}
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return telemetry.Noop{}
	}
	settings, err := telemetry.LoadSettings(appFs, dir)
	if err != nil {
		LogError("telemetry settings unavailable", err)
		return telemetry.Noop{}
	}
	rec, err := telemetry.NewRecorder(telemetry.Options{
		APIKey:   apiKey,
		Endpoint: endpoint,
		Version:  version,
		Settings: settings,
	})
	if err != nil {
		LogError("telemetry disabled", err)
		return telemetry.Noop{}
	}
	return rec
}

// finishCommand records the command outcome and releases per-run resources.
func finishCommand(err error) {
	if !commandStart.IsZero() {
		name := "taskboard"
		if c, _, findErr := rootCmd.Find(os.Args[1:]); findErr == nil {
			name = c.CommandPath()
		}
		recorder.Track(telemetry.CommandEvent(name, nowFunc().Sub(commandStart), err))
	}
	_ = recorder.Close()
	recorder = telemetry.Noop{}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}
