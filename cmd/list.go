/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/view"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks from the backend, filtered and sorted.

Defaults come from the view.* config keys; flags override them.

Examples:
  taskboard list
  taskboard list --hide-completed --priority high
  taskboard list --search invoice --sort -createdAt
  taskboard list --group
  taskboard list --high
  taskboard list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listHideCompleted bool
	listPriority      string
	listSearch        string
	listSort          string
	listGroup         bool
	listHigh          bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listHideCompleted, "hide-completed", false, "hide completed tasks")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "only show tasks with this priority (low, medium, high)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only show tasks whose title or description contains this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by dueDate, createdAt, priority or title (prefix - to reverse)")
	listCmd.Flags().BoolVar(&listGroup, "group", false, "group tasks under high, medium and low priority headings")
	listCmd.Flags().BoolVar(&listHigh, "high", false, "every high-priority task in backend order, completed ones included")
	listCmd.MarkFlagsMutuallyExclusive("high", "hide-completed")
	listCmd.MarkFlagsMutuallyExclusive("high", "priority")
	listCmd.MarkFlagsMutuallyExclusive("high", "search")
	listCmd.MarkFlagsMutuallyExclusive("high", "sort")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := applyListFlags(cmd, s.ctrl); err != nil {
		return err
	}
	if err := s.load(cmd.Context()); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	visible := s.ctrl.Visible()
	if listHigh {
		visible = view.HighPriority(s.app.Tasks())
	}
	if listGroup {
		groups := view.GroupByPriority(visible)
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), groups)
		}
		ui.RenderGroupedTaskList(cmd.OutOrStdout(), groups, s.store.GetState(), nowFunc())
		return nil
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), visible)
	}
	ui.RenderTaskList(cmd.OutOrStdout(), visible, s.store.GetState(), nowFunc())
	return nil
}

// applyListFlags overrides the configured view state with explicit flags.
func applyListFlags(cmd *cobra.Command, ctrl *view.Controller) error {
	if listHideCompleted {
		ctrl.SetShowCompleted(false)
	}
	if cmd.Flags().Changed("priority") {
		p, err := parsePriorityFlag(listPriority)
		if err != nil {
			return err
		}
		ctrl.SetPriorityFilter(p)
	}
	if listSearch != "" {
		ctrl.SetSearchTerm(listSearch)
	}
	if cmd.Flags().Changed("sort") {
		key, err := view.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		ctrl.SetSortBy(key)
	}
	return nil
}
