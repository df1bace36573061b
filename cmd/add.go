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
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title...>",
	Short: "Create a task",
	Long: `Create a task on the backend.

The title is every argument joined by spaces. A blank title is ignored.

Examples:
  taskboard add Write the release notes
  taskboard add "Renew domain" --priority high --due 2025-03-01
  taskboard add Review PR --user 2 --category 1 --description "Check the migration"`,
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addDue         string
	addUser        string
	addCategory    string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(models.PriorityMedium), "priority (low, medium, high)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addUser, "user", "", "assignee user id")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category id")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		if !isQuiet() {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.StyleWarning.Render("Nothing added: the title is empty."))
		}
		return nil
	}

	priority, err := parsePriorityFlag(addPriority)
	if err != nil {
		return err
	}
	due, err := parseDueFlag(addDue)
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

	draft := models.TaskDraft{
		Title:       title,
		Description: addDescription,
		Priority:    priority,
		User:        models.ID(addUser),
		Category:    models.ID(addCategory),
		DueDate:     due,
	}
	task, err := s.app.AddTask(cmd.Context(), draft)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), task)
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added task %s: %s\n",
			ui.Icon("✓", ui.StyleSuccess), util.ShortID(task.ID, 0), task.Title)
	}
	return nil
}
