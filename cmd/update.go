/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <task_id>",
	Short: "Change fields of a task",
	Long: `Change fields of a task. Only the flags you pass are sent.

Examples:
  taskboard update 3 --title "Ship v2"
  taskboard update 3 --priority low --due ""
  taskboard update 3 --completed=false`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateDue         string
	updateUser        string
	updateCategory    string
	updateCompleted   bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD, empty clears)")
	updateCmd.Flags().StringVar(&updateUser, "user", "", "new assignee user id (empty unassigns)")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category id (empty clears)")
	updateCmd.Flags().BoolVar(&updateCompleted, "completed", false, "mark completed or not")
}

// buildUpdatePatch turns the changed flags into a patch.
func buildUpdatePatch(cmd *cobra.Command) (models.TaskPatch, error) {
	var patch models.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := strings.TrimSpace(updateTitle)
		if title == "" {
			return patch, fmt.Errorf("%w: title cannot be empty", types.ErrInvalidInput)
		}
		patch.Title = &title
	}
	if flags.Changed("description") {
		patch.Description = &updateDescription
	}
	if flags.Changed("priority") {
		p, err := parsePriorityFlag(updatePriority)
		if err != nil {
			return patch, err
		}
		if p == "" {
			return patch, fmt.Errorf("%w: priority cannot be empty", types.ErrInvalidInput)
		}
		patch.Priority = &p
	}
	if flags.Changed("due") {
		due, err := parseDueFlag(updateDue)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &due
	}
	if flags.Changed("user") {
		id := models.ID(updateUser)
		patch.User = &id
	}
	if flags.Changed("category") {
		id := models.ID(updateCategory)
		patch.Category = &id
	}
	if flags.Changed("completed") {
		completed := updateCompleted
		patch.Completed = &completed
		if completed {
			patch.CompletedAt = models.SomeTimestamp(nowFunc())
		} else {
			patch.CompletedAt = models.NullTimestamp()
		}
	}

	if patch.IsEmpty() {
		return patch, fmt.Errorf("%w: nothing to update; pass at least one field flag", types.ErrInvalidInput)
	}
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch, err := buildUpdatePatch(cmd)
	if err != nil {
		return err
	}

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

	updated, err := s.app.UpdateTask(cmd.Context(), task.ID, patch)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Updated task %s: %s\n",
			ui.Icon("✓", ui.StyleSuccess), util.ShortID(updated.ID, 0), updated.Title)
	}
	return nil
}
