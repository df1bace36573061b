package app

import (
	"context"
	"errors"
	"testing"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  TaskStats
	}{
		{
			name:  "empty",
			tasks: nil,
			want:  TaskStats{},
		},
		{
			name: "one of three done",
			tasks: []models.Task{
				{Priority: models.PriorityHigh, Completed: true},
				{Priority: models.PriorityHigh},
				{Priority: models.PriorityLow},
			},
			want: TaskStats{Total: 3, Completed: 1, Pending: 2, HighPriority: 2, LowPriority: 1, CompletionRate: 33},
		},
		{
			name: "one of four done",
			tasks: []models.Task{
				{Priority: models.PriorityLow, Completed: true},
				{Priority: models.PriorityLow},
				{Priority: models.PriorityMedium},
				{Priority: models.PriorityHigh},
			},
			want: TaskStats{Total: 4, Completed: 1, Pending: 3, HighPriority: 1, MediumPriority: 1, LowPriority: 1, CompletionRate: 25},
		},
		{
			name: "rounds half up",
			tasks: []models.Task{
				{Priority: models.PriorityMedium, Completed: true},
				{Priority: models.PriorityMedium},
				{Priority: models.PriorityMedium, Completed: true},
				{Priority: models.PriorityMedium, Completed: true},
				{Priority: models.PriorityMedium},
				{Priority: models.PriorityMedium},
				{Priority: models.PriorityMedium},
				{Priority: models.PriorityMedium},
			},
			want: TaskStats{Total: 8, Completed: 3, Pending: 5, MediumPriority: 8, CompletionRate: 38},
		},
		{
			name:  "all done",
			tasks: []models.Task{{Completed: true}, {Completed: true}},
			want:  TaskStats{Total: 2, Completed: 2, CompletionRate: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stats(tt.tasks))
		})
	}
}

func TestTaskApp_FetchTaskStats(t *testing.T) {
	api := seededAPI()
	a := newTestApp(api)
	before := a.State()

	stats, err := a.FetchTaskStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Same(t, before, a.State())

	api.err = errBackend
	_, err = a.FetchTaskStats(context.Background())
	assert.True(t, errors.Is(err, types.ErrRemote))
}
