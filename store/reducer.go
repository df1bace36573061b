package store

import (
	"slices"

	"github.com/josephgoksu/TaskBoard/models"
)

// Reduce computes the state that follows action. It never mutates state or
// its slices. Unknown actions, nil actions, and updates or deletes of
// missing ids return state itself. A nil state is treated as InitialState.
func Reduce(state *AppState, action Action) *AppState {
	if state == nil {
		state = InitialState()
	}

	switch a := action.(type) {
	case SetTasks:
		next := state.clone()
		next.Tasks = copyOrEmpty(a.Tasks)
		return next

	case SetUsers:
		next := state.clone()
		next.Users = copyOrEmpty(a.Users)
		return next

	case SetCategories:
		next := state.clone()
		next.Categories = copyOrEmpty(a.Categories)
		return next

	case AddTask:
		next := state.clone()
		tasks := make([]models.Task, 0, len(state.Tasks)+1)
		tasks = append(tasks, state.Tasks...)
		next.Tasks = append(tasks, a.Task)
		return next

	case UpdateTask:
		i := state.taskIndex(a.Patch.ID)
		if i < 0 {
			return state
		}
		next := state.clone()
		next.Tasks = slices.Clone(state.Tasks)
		next.Tasks[i] = a.Patch.ApplyTo(state.Tasks[i])
		return next

	case DeleteTask:
		i := state.taskIndex(a.ID)
		if i < 0 {
			return state
		}
		next := state.clone()
		next.Tasks = slices.Delete(slices.Clone(state.Tasks), i, i+1)
		return next

	default:
		return state
	}
}

func copyOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
