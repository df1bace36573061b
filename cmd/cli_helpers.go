package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/view"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func isOffline() bool {
	return viper.GetBool("offline")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// interactive is swapped by tests.
var interactive = ui.IsInteractive

// confirmAction asks a yes/no question. JSON mode, --yes and non-terminal
// sessions skip the prompt and proceed.
func confirmAction(label string, assumeYes bool) (bool, error) {
	if assumeYes || isJSON() || !interactive() {
		return true, nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// viewStateFromConfig seeds the list state from view.* settings.
func viewStateFromConfig(cfg types.ViewConfig) view.ViewState {
	sortBy, err := view.ParseSortKey(cfg.SortBy)
	if err != nil {
		sortBy = view.DefaultSort
	}
	return view.ViewState{
		Filter: view.Filter{
			ShowCompleted: cfg.ShowCompleted,
			Priority:      models.Priority(cfg.Priority),
		},
		SortBy: sortBy,
	}
}

// parsePriorityFlag accepts an empty value as "not set".
func parsePriorityFlag(s string) (models.Priority, error) {
	if s == "" {
		return "", nil
	}
	p, err := models.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	return p, nil
}

// parseDueFlag parses a due date; an empty value clears it.
func parseDueFlag(s string) (models.Timestamp, error) {
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		return models.Timestamp{}, fmt.Errorf("%w: due date must look like 2025-01-31: %v", types.ErrInvalidInput, err)
	}
	return ts, nil
}
