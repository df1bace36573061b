/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/spf13/cobra"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:     "toggle <task_id>",
	Aliases: []string{"done"},
	Short:   "Toggle a task between completed and pending",
	Example: `  # Complete a task
  taskboard toggle 3

  # IDs can be shortened to any unique prefix
  taskboard done 9f2c`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requireOnline(); err != nil {
		return err
	}

	task, err := s.resolveTask(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	updated, err := s.ctrl.Toggle(cmd.Context(), task.ID)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	if isQuiet() {
		return nil
	}
	if updated.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Completed %s: %s\n", ui.Icon("✓", ui.StyleSuccess), util.ShortID(updated.ID, 0), updated.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Reopened %s: %s\n", ui.Icon("○", ui.StyleWarning), util.ShortID(updated.ID, 0), updated.Title)
	}
	return nil
}
