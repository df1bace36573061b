/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/josephgoksu/TaskBoard/internal/telemetry"
	"github.com/spf13/cobra"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage TaskBoard's anonymous telemetry settings.

Telemetry is off until you enable it here and a telemetry.apiKey is
configured. Only the command name, its duration and whether it failed are
sent, with a random anonymous id. No task data is ever collected.`,
}

func loadTelemetrySettings() (*telemetry.Settings, string, error) {
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve config directory: %w", err)
	}
	settings, err := telemetry.LoadSettings(appFs, dir)
	if err != nil {
		return nil, "", err
	}
	return settings, dir, nil
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, _, err := loadTelemetrySettings()
		if err != nil {
			return fmt.Errorf("failed to read telemetry status: %w", err)
		}
		cfg := GetConfig().Telemetry
		sending := settings.Enabled && !cfg.Disabled && cfg.APIKey != ""

		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"enabled":     settings.Enabled,
				"sending":     sending,
				"anonymousId": settings.AnonymousID,
			})
		}

		out := cmd.OutOrStdout()
		if !settings.Enabled {
			fmt.Fprintln(out, "Telemetry: disabled")
			fmt.Fprintln(out, "   To enable: taskboard telemetry enable")
			return nil
		}
		fmt.Fprintln(out, "Telemetry: enabled")
		fmt.Fprintf(out, "   Anonymous ID: %s\n", settings.AnonymousID)
		if !sending {
			fmt.Fprintln(out, "   Nothing is sent: telemetry.apiKey is empty or telemetry.disabled is set.")
		}
		fmt.Fprintln(out, "   To disable: taskboard telemetry disable")
		return nil
	},
}

func setTelemetry(cmd *cobra.Command, enabled bool) error {
	settings, dir, err := loadTelemetrySettings()
	if err != nil {
		return err
	}
	settings.Enabled = enabled
	if err := settings.Save(appFs, dir); err != nil {
		return err
	}
	if enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Telemetry enabled. Thank you for helping improve TaskBoard!")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Telemetry disabled.")
	}
	return nil
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(cmd, true); err != nil {
			return fmt.Errorf("failed to enable telemetry: %w", err)
		}
		return nil
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(cmd, false); err != nil {
			return fmt.Errorf("failed to disable telemetry: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(telemetryCmd)

	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
