package cmd

import (
	"testing"

	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCmd_SendsOnlyChangedFields(t *testing.T) {
	backend := setupCLI(t)

	stdout, _, err := runCLI(t, "update", "a2", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Updated task a2: Buy milk")

	body := backend.lastBody()
	assert.Contains(t, body, "priority")
	assert.Contains(t, body, "updatedAt")
	assert.NotContains(t, body, "title")
	assert.NotContains(t, body, "completed")
	assert.NotContains(t, body, "completedAt")

	task, _ := backend.task("a2")
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, "Buy milk", task.Title)
}

func TestUpdateCmd_Reopen(t *testing.T) {
	backend := setupCLI(t)

	_, _, err := runCLI(t, "update", "b1", "--completed=false")
	require.NoError(t, err)

	body := backend.lastBody()
	assert.JSONEq(t, "false", string(body["completed"]))
	assert.JSONEq(t, "null", string(body["completedAt"]))

	task, _ := backend.task("b1")
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestUpdateCmd_NothingToUpdate(t *testing.T) {
	backend := setupCLI(t)

	_, _, err := runCLI(t, "update", "a1")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Empty(t, backend.requestLog())

	_, _, err = runCLI(t, "update", "a1", "--title", " ")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestUpdateCmd_PrefixResolution(t *testing.T) {
	backend := setupCLI(t)

	_, _, err := runCLI(t, "update", "b", "--title", "File taxes early")
	require.NoError(t, err)
	task, _ := backend.task("b1")
	assert.Equal(t, "File taxes early", task.Title)

	_, _, err = runCLI(t, "update", "a", "--title", "x")
	assert.ErrorIs(t, err, util.ErrAmbiguousID)

	_, _, err = runCLI(t, "update", "zz", "--title", "x")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
