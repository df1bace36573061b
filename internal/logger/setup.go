package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls Setup.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool

	// File, when set, receives log output instead of stderr.
	File string

	// Output overrides stderr; used by tests.
	Output io.Writer
}

// Setup installs the default slog logger. Output goes to stderr at Warn
// level, or Debug when verbose. When a log file is configured it is opened
// for append and returned so the caller can close it.
func Setup(opts Options) (io.Closer, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
		// a file is only written when asked for, so keep the detail
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
