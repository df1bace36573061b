package cmd

import (
	"path/filepath"
	"testing"

	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCmd(t *testing.T) {
	setupCLI(t)
	t.Setenv("TASKBOARD_TELEMETRY_APIKEY", "phc_secret")

	stdout, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "baseURL: http://127.0.0.1")
	assert.Contains(t, stdout, "sortBy: dueDate")
	assert.Contains(t, stdout, "config file: none")
	assert.NotContains(t, stdout, "phc_secret")
}

func TestConfigInitCmd(t *testing.T) {
	setupCLI(t)
	path := filepath.Join("conf", ".taskboard.yaml")

	stdout, _, err := runCLI(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	data, err := afero.ReadFile(appFs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "baseURL: "+config.DefaultAPIBaseURL)

	_, _, err = runCLI(t, "config", "init", "--path", path)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, _, err = runCLI(t, "config", "init", "--path", path, "--force")
	assert.NoError(t, err)
}

func TestTelemetryCmd(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()
	prev := config.GetGlobalConfigDir
	config.GetGlobalConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { config.GetGlobalConfigDir = prev })

	stdout, _, err := runCLI(t, "telemetry", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Telemetry: disabled")

	stdout, _, err = runCLI(t, "telemetry", "enable")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Telemetry enabled")

	stdout, _, err = runCLI(t, "telemetry", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Telemetry: enabled")
	assert.Contains(t, stdout, "Nothing is sent")

	_, _, err = runCLI(t, "telemetry", "disable")
	require.NoError(t, err)
	stdout, _, err = runCLI(t, "telemetry", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Telemetry: disabled")
}
