package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/TaskBoard/internal/cache"
	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

// ErrOffline is returned by commands that need the backend when --offline
// is set.
var ErrOffline = errors.New("this command needs the backend; drop --offline")

// PrintError prints an error message without exiting, allowing for recovery.
// It prints a user-friendly message by default. If the --verbose flag is
// set, it prints the full technical error.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// describeError maps an error chain to the short message shown without
// --verbose.
func describeError(err error) string {
	var remote *types.RemoteError
	switch {
	case errors.Is(err, types.ErrNotFound):
		return "Error: task not found."
	case errors.Is(err, util.ErrAmbiguousID):
		return "Error: " + err.Error()
	case errors.Is(err, cache.ErrNoSnapshot):
		return "Error: no cached data yet; run once with the backend reachable."
	case errors.Is(err, promptui.ErrInterrupt):
		return "Cancelled."
	case errors.As(err, &remote):
		if remote.StatusCode == 0 {
			return fmt.Sprintf("Error: cannot reach the backend at %s. Is it running?", GetConfig().API.BaseURL)
		}
		return fmt.Sprintf("Error: the backend rejected the request (HTTP %d).", remote.StatusCode)
	default:
		return "Error: " + err.Error()
	}
}
