package store

import (
	"testing"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *AppState {
	return &AppState{
		Tasks: []models.Task{
			{ID: "1", Title: "Buy milk", Priority: models.PriorityLow},
			{ID: "2", Title: "Write report", Priority: models.PriorityHigh},
			{ID: "3", Title: "Call Bob", Priority: models.PriorityMedium},
		},
		Users:      []models.User{{ID: "u1", Name: "Ada"}},
		Categories: []models.Category{{ID: "c1", Name: "Home", Color: "#00ff00"}},
	}
}

func ptr[T any](v T) *T { return &v }

func TestReduce_SetActions(t *testing.T) {
	state := sampleState()
	tasks := []models.Task{{ID: "9", Title: "Only"}}

	next := Reduce(state, SetTasks{Tasks: tasks})
	require.NotSame(t, state, next)
	assert.Equal(t, tasks, next.Tasks)
	assert.Equal(t, state.Users, next.Users)
	assert.Len(t, state.Tasks, 3, "input state must not change")

	tasks[0].Title = "mutated after dispatch"
	assert.Equal(t, "Only", next.Tasks[0].Title, "state must not alias the caller's slice")

	next = Reduce(state, SetUsers{Users: []models.User{{ID: "u2", Name: "Grace"}}})
	assert.Equal(t, models.ID("u2"), next.Users[0].ID)
	assert.Equal(t, state.Tasks, next.Tasks)

	next = Reduce(state, SetCategories{Categories: nil})
	assert.NotNil(t, next.Categories)
	assert.Empty(t, next.Categories)
}

func TestReduce_AddTaskAppends(t *testing.T) {
	state := sampleState()
	next := Reduce(state, AddTask{Task: models.Task{ID: "4", Title: "New"}})

	require.Len(t, next.Tasks, 4)
	assert.Equal(t, models.ID("4"), next.Tasks[3].ID)
	assert.Len(t, state.Tasks, 3)
}

func TestReduce_UpdateTaskMergesInPlace(t *testing.T) {
	state := sampleState()
	next := Reduce(state, UpdateTask{Patch: models.TaskPatch{ID: "2", Completed: ptr(true)}})

	require.NotSame(t, state, next)
	assert.Equal(t, models.ID("2"), next.Tasks[1].ID, "position preserved")
	assert.True(t, next.Tasks[1].Completed)
	assert.Equal(t, "Write report", next.Tasks[1].Title, "unspecified fields kept")
	assert.False(t, state.Tasks[1].Completed, "input state must not change")
}

func TestReduce_NoOps(t *testing.T) {
	state := sampleState()

	tests := []struct {
		name   string
		action Action
	}{
		{name: "update missing id", action: UpdateTask{Patch: models.TaskPatch{ID: "nope", Title: ptr("x")}}},
		{name: "delete missing id", action: DeleteTask{ID: "nope"}},
		{name: "nil action", action: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, state, Reduce(state, tt.action))
		})
	}
}

func TestReduce_DeleteTask(t *testing.T) {
	state := sampleState()
	next := Reduce(state, DeleteTask{ID: "2"})

	require.Len(t, next.Tasks, 2)
	assert.Equal(t, models.ID("1"), next.Tasks[0].ID)
	assert.Equal(t, models.ID("3"), next.Tasks[1].ID)
	assert.Equal(t, models.ID("2"), state.Tasks[1].ID)
}

func TestReduce_DeleteTaskTwiceEqualsOnce(t *testing.T) {
	once := Reduce(sampleState(), DeleteTask{ID: "2"})
	twice := Reduce(once, DeleteTask{ID: "2"})

	assert.Same(t, once, twice, "second delete is a no-op")
	assert.Equal(t, Reduce(sampleState(), DeleteTask{ID: "2"}), twice)
}

func TestReduce_NilStateIsInitial(t *testing.T) {
	next := Reduce(nil, AddTask{Task: models.Task{ID: "1"}})
	require.Len(t, next.Tasks, 1)
	assert.Empty(t, next.Users)
}

func TestAppState_Lookups(t *testing.T) {
	state := sampleState()

	task, ok := state.FindTask("3")
	assert.True(t, ok)
	assert.Equal(t, "Call Bob", task.Title)

	_, ok = state.FindTask("missing")
	assert.False(t, ok)

	user, ok := state.FindUser("u1")
	assert.True(t, ok)
	assert.Equal(t, "Ada", user.Name)

	cat, ok := state.FindCategory("c1")
	assert.True(t, ok)
	assert.Equal(t, "Home", cat.Name)
}
