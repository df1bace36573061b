/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/store"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks, users and categories",
	Long: `Write the loaded state as JSON or YAML, to stdout or a file.

Examples:
  taskboard export > board.json
  taskboard export --format yaml --output backup/board.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json or yaml (default: from the output extension, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write (default: stdout)")
}

// exportFormatFor picks the format from the flag or the file extension.
func exportFormatFor(format, output string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	switch format {
	case "json", "yaml":
		return format, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (want json or yaml)", types.ErrInvalidInput, format)
	}
}

func encodeState(state *store.AppState, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(state)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := exportFormatFor(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.load(cmd.Context()); err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	state := s.store.GetState()
	data, err := encodeState(state, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(exportOutput); dir != "." {
		if err := appFs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(appFs, exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d tasks, %d users, %d categories to %s\n",
			ui.Icon("✓", ui.StyleSuccess), len(state.Tasks), len(state.Users), len(state.Categories), exportOutput)
	}
	return nil
}
