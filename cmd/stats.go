/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/app"
	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts and completion rate",
	Long: `Show how many tasks exist, how many are done and how they split by priority.

With --remote the counts come from a direct backend read that bypasses the
local state and the snapshot cache.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsRemote bool

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsRemote, "remote", false, "compute from a fresh backend read")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var stats app.TaskStats
	if statsRemote {
		if err := s.requireOnline(); err != nil {
			return err
		}
		if stats, err = s.app.FetchTaskStats(cmd.Context()); err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}
	} else {
		if err := s.load(cmd.Context()); err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		stats = app.Stats(s.app.Tasks())
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), stats)
	}
	ui.RenderStats(cmd.OutOrStdout(), stats)
	return nil
}
