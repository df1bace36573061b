/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/view"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/cobra"
)

// dueCmd represents the due command
var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List open tasks that are due soon",
	Long: `List incomplete tasks due within the next N days, overdue ones included,
soonest first.

Examples:
  taskboard due
  taskboard due --within 1`,
	Args: cobra.NoArgs,
	RunE: runDue,
}

var dueWithin int

func init() {
	rootCmd.AddCommand(dueCmd)

	dueCmd.Flags().IntVarP(&dueWithin, "within", "w", 7, "number of days to look ahead")
}

func runDue(cmd *cobra.Command, args []string) error {
	if dueWithin < 0 {
		return fmt.Errorf("%w: --within must not be negative", types.ErrInvalidInput)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.load(cmd.Context()); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	tasks := view.DueWithin(s.app.Tasks(), dueWithin, nowFunc())
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), tasks)
	}
	if !isQuiet() {
		ui.RenderPageHeader(cmd.OutOrStdout(), "Due soon", fmt.Sprintf("open tasks due within %d days", dueWithin))
	}
	ui.RenderTaskList(cmd.OutOrStdout(), tasks, s.store.GetState(), nowFunc())
	return nil
}
