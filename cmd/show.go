/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <task_id>",
	Short: "Show one task in detail",
	Long:  `Fetch a task from the backend and show every field, with its assignee and category names resolved.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.resolveTask(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !isOffline() {
		// the list may be a stale snapshot; ask for the current copy
		fresh, err := s.app.GetTask(cmd.Context(), task.ID)
		if err != nil {
			LogError("using listed copy of task", err)
		} else {
			task = fresh
		}
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), task)
	}
	ui.RenderTaskDetail(cmd.OutOrStdout(), task, s.store.GetState(), nowFunc())
	return nil
}
