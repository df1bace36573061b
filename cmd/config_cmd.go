/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage TaskBoard configuration",
	Long: `View and create TaskBoard configuration.

Settings are read from .taskboard.yaml in ./.taskboard/, $HOME or the
current directory, then from TASKBOARD_* environment variables (a .env file
is loaded first), then from flags.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		if cfg.Telemetry.APIKey != "" {
			cfg.Telemetry.APIKey = "********"
		}

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), cfg)
		}

		data, err := config.RenderConfig(cfg)
		if err != nil {
			return err
		}
		if !isQuiet() {
			source := viper.ConfigFileUsed()
			if source == "" {
				source = "none (defaults and environment)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.StyleSubtle.Render("# config file: "+source))
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var (
	configInitPath  string
	configInitForce bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			p, err := config.DefaultConfigFilePath()
			if err != nil {
				return fmt.Errorf("resolve home directory: %w", err)
			}
			path = p
		}

		if err := config.WriteConfigFile(appFs, path, config.Defaults(), configInitForce); err != nil {
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{"status": "created", "path": path})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.Icon("✓", ui.StyleSuccess), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write (default: $HOME/.taskboard.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}
