// Package logger sets up structured logging and crash reporting for
// TaskBoard.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"
)

// MaxCrashLogs is the number of crash logs kept on disk.
const MaxCrashLogs = 10

const (
	crashPrefix = "crash_"
	crashSuffix = ".log"
)

type crashContext struct {
	mu      sync.RWMutex
	command string
	args    string
	version string
	dir     string
}

var crash = &crashContext{}

// SetCrashDir sets where crash logs are written.
func SetCrashDir(dir string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.dir = dir
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.version = version
}

// SetCommand records the command being executed and its arguments.
func SetCommand(cmd string, args []string) {
	crash.mu.Lock()
	defer crash.mu.Unlock()
	crash.command = cmd
	crash.args = truncateForLog(strings.Join(args, " "), 500)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	Args       string    `json:"args,omitempty"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic recovers a panic, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		entry := newCrashLog(r)
		path, err := writeCrashLog(entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, entry.StackTrace)
		}
		printCrashNotice(os.Stderr, path)
		os.Exit(1)
	}
}

func printCrashNotice(w io.Writer, path string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TaskBoard encountered an unexpected error.")
	if path != "" {
		fmt.Fprintln(w, "A crash log has been saved to:")
		fmt.Fprintf(w, "  %s\n", path)
	}
	fmt.Fprintln(w)
}

func newCrashLog(panicValue any) CrashLog {
	crash.mu.RLock()
	defer crash.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    crash.version,
		Command:    crash.command,
		Args:       crash.args,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog writes entry and prunes old logs. It returns the file path.
func writeCrashLog(entry CrashLog) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := filepath.Join(dir, crashFileName(entry.Timestamp))
	if err := os.WriteFile(path, []byte(formatCrashLog(entry)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}
	return path, nil
}

func crashDir() string {
	crash.mu.RLock()
	defer crash.mu.RUnlock()
	if crash.dir == "" {
		return filepath.Join(os.TempDir(), "taskboard", "logs")
	}
	return crash.dir
}

func crashFileName(t time.Time) string {
	return fmt.Sprintf("%s%s%s", crashPrefix, t.Format("20060102_150405.000"), crashSuffix)
}

func formatCrashLog(entry CrashLog) string {
	rule := strings.Repeat("-", 80)
	var sb strings.Builder

	fmt.Fprintf(&sb, "TASKBOARD CRASH LOG\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintf(&sb, "Timestamp: %s\n", entry.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", entry.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", entry.Command)
	if entry.Args != "" {
		fmt.Fprintf(&sb, "Args:      %s\n", entry.Args)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", entry.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", entry.OS, entry.Arch)
	fmt.Fprintf(&sb, "\n%s\nPANIC VALUE\n%s\n%s\n", rule, rule, entry.PanicValue)
	fmt.Fprintf(&sb, "\n%s\nSTACK TRACE\n%s\n%s", rule, rule, entry.StackTrace)
	return sb.String()
}

// pruneCrashLogs keeps only the keep most recent crash logs in dir.
func pruneCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= keep {
		return err
	}
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// ListCrashLogs returns crash log paths, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(crashDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, crashPrefix) && strings.HasSuffix(name, crashSuffix) {
			logs = append(logs, filepath.Join(dir, name))
		}
	}
	// names embed the timestamp
	slices.Sort(logs)
	return logs, nil
}
