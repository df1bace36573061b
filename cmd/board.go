/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive task board",
	Long: `Open a full-screen board to browse, add, complete and delete tasks.

The board starts from the cached snapshot, when there is one, and refreshes
from the backend. Changes to view.* in the config file apply while it runs.
Press ? inside the board for key bindings.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !interactive() {
		return errors.New("the board needs an interactive terminal; try 'taskboard list'")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requireOnline(); err != nil {
		return err
	}

	if _, err := s.restore(cmd.Context()); err != nil {
		LogError("starting without cached snapshot", err)
	}
	s.attachCache()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := ui.NewBoardModel(ctx, s.ctrl, s.app.Watch(ctx), watchViewConfig())
	return ui.RunBoard(model)
}

// watchViewConfig streams view.* settings each time the config file
// changes. It returns nil when no config file is in use.
func watchViewConfig() <-chan types.ViewConfig {
	if viper.ConfigFileUsed() == "" {
		return nil
	}

	updates := make(chan types.ViewConfig, 1)
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var vc types.ViewConfig
		if err := viper.UnmarshalKey("view", &vc); err != nil {
			slog.Warn("ignoring unreadable view config", "file", e.Name, "error", err)
			return
		}
		if err := validate.Struct(vc); err != nil {
			slog.Warn("ignoring invalid view config", "file", e.Name, "error", err)
			return
		}
		// keep only the newest settings
		select {
		case <-updates:
		default:
		}
		updates <- vc
	})
	viper.WatchConfig()
	return updates
}
