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

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <task_id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID or a unique ID prefix. A confirmation prompt is displayed unless --yes is given or the session is not interactive.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	ok, err := confirmAction(fmt.Sprintf("Delete task '%s' (ID: %s)", task.Title, task.ID), deleteYes)
	if err != nil {
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
		return nil
	}

	if err := s.ctrl.Delete(cmd.Context(), task.ID); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"status": "deleted", "id": task.ID})
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted task %s: %s\n", ui.Icon("✓", ui.StyleSuccess), util.ShortID(task.ID, 0), task.Title)
	}
	return nil
}
