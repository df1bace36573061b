package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetCrashContext(t *testing.T) {
	t.Helper()
	orig := crash
	crash = &crashContext{}
	t.Cleanup(func() { crash = orig })
}

func TestCrashContext_Set(t *testing.T) {
	resetCrashContext(t)

	SetCrashDir("/tmp/test-taskboard/logs")
	SetVersion("1.0.0-test")
	SetCommand("taskboard add", []string{"Buy", "milk"})

	entry := newCrashLog("test panic")

	if entry.Version != "1.0.0-test" {
		t.Errorf("Version = %q", entry.Version)
	}
	if entry.Command != "taskboard add" {
		t.Errorf("Command = %q", entry.Command)
	}
	if entry.Args != "Buy milk" {
		t.Errorf("Args = %q", entry.Args)
	}
	if entry.PanicValue != "test panic" {
		t.Errorf("PanicValue = %q", entry.PanicValue)
	}
	if entry.StackTrace == "" {
		t.Error("expected a stack trace")
	}
	if got := crashDir(); got != "/tmp/test-taskboard/logs" {
		t.Errorf("crashDir() = %q", got)
	}
}

func TestCrashContext_ArgsTruncated(t *testing.T) {
	resetCrashContext(t)
	SetCommand("taskboard add", []string{strings.Repeat("a", 1000)})

	entry := newCrashLog("boom")
	if len(entry.Args) > 600 || !strings.HasSuffix(entry.Args, "[truncated]") {
		t.Errorf("expected truncated args, got length %d", len(entry.Args))
	}
}

func TestFormatCrashLog(t *testing.T) {
	entry := CrashLog{
		Timestamp:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Version:    "1.0.0",
		Command:    "taskboard list",
		PanicValue: "index out of range",
		StackTrace: "goroutine 1 [running]:\n",
		GoVersion:  "go1.24",
		OS:         "linux",
		Arch:       "amd64",
	}

	out := formatCrashLog(entry)
	for _, want := range []string{"TASKBOARD CRASH LOG", "Version:   1.0.0", "Command:   taskboard list", "index out of range", "goroutine 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("crash log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Args:") {
		t.Error("empty args should be omitted")
	}
}

func TestWriteCrashLog(t *testing.T) {
	resetCrashContext(t)
	dir := t.TempDir()
	SetCrashDir(dir)

	path, err := writeCrashLog(newCrashLog("boom"))
	if err != nil {
		t.Fatalf("writeCrashLog failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("crash log written to %q, want dir %q", path, dir)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "boom") {
		t.Error("crash log should contain the panic value")
	}

	logs, err := ListCrashLogs()
	if err != nil || len(logs) != 1 {
		t.Errorf("ListCrashLogs() = %v, %v", logs, err)
	}
}

func TestPruneCrashLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxCrashLogs+3; i++ {
		name := crashFileName(base.Add(time.Duration(i) * time.Minute))
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		t.Fatalf("pruneCrashLogs failed: %v", err)
	}

	logs, err := listCrashLogs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != MaxCrashLogs {
		t.Fatalf("expected %d logs, got %d", MaxCrashLogs, len(logs))
	}
	oldest := filepath.Base(logs[0])
	if oldest != crashFileName(base.Add(3*time.Minute)) {
		t.Errorf("oldest kept log = %s, the three oldest should be gone", oldest)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("non-crash files must be left alone")
	}
}

func TestListCrashLogs_MissingDir(t *testing.T) {
	logs, err := listCrashLogs(filepath.Join(t.TempDir(), "missing"))
	if err != nil || logs != nil {
		t.Errorf("expected nil, nil; got %v, %v", logs, err)
	}
}

func TestPrintCrashNotice(t *testing.T) {
	var buf bytes.Buffer
	printCrashNotice(&buf, "/tmp/crash.log")
	if !strings.Contains(buf.String(), "/tmp/crash.log") {
		t.Errorf("notice should name the log path: %q", buf.String())
	}
}

func TestSetup_Levels(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	var buf bytes.Buffer
	if _, err := Setup(Options{Output: &buf}); err != nil {
		t.Fatal(err)
	}
	slog.Debug("hidden")
	slog.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected default-level output: %q", out)
	}

	buf.Reset()
	if _, err := Setup(Options{Output: &buf, Verbose: true}); err != nil {
		t.Fatal(err)
	}
	slog.Debug("detail")
	if !strings.Contains(buf.String(), "detail") {
		t.Errorf("verbose should log debug: %q", buf.String())
	}
}

func TestSetup_File(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")
	closer, err := Setup(Options{File: path})
	if err != nil {
		t.Fatal(err)
	}
	slog.Debug("to file")
	slog.SetDefault(orig)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file content = %q", data)
	}
}
