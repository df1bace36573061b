package store

import "github.com/josephgoksu/TaskBoard/models"

// Action is a state transition request. The set of actions is closed:
// only types in this package implement it.
type Action interface {
	// Type returns the action's wire name, used in logs.
	Type() string
	isAction()
}

// Listener is called with the new state after every dispatch.
type Listener func(state *AppState)

// Action type names.
const (
	ActionSetTasks      = "SET_TASKS"
	ActionSetUsers      = "SET_USERS"
	ActionSetCategories = "SET_CATEGORIES"
	ActionAddTask       = "ADD_TASK"
	ActionUpdateTask    = "UPDATE_TASK"
	ActionDeleteTask    = "DELETE_TASK"
)

// SetTasks replaces the whole task list.
type SetTasks struct{ Tasks []models.Task }

// SetUsers replaces the user list.
type SetUsers struct{ Users []models.User }

// SetCategories replaces the category list.
type SetCategories struct{ Categories []models.Category }

// AddTask appends a task.
type AddTask struct{ Task models.Task }

// UpdateTask merges Patch into the task with the same id.
type UpdateTask struct{ Patch models.TaskPatch }

// DeleteTask removes the task with the given id.
type DeleteTask struct{ ID models.ID }

func (SetTasks) Type() string      { return ActionSetTasks }
func (SetUsers) Type() string      { return ActionSetUsers }
func (SetCategories) Type() string { return ActionSetCategories }
func (AddTask) Type() string       { return ActionAddTask }
func (UpdateTask) Type() string    { return ActionUpdateTask }
func (DeleteTask) Type() string    { return ActionDeleteTask }

func (SetTasks) isAction()      {}
func (SetUsers) isAction()      {}
func (SetCategories) isAction() {}
func (AddTask) isAction()       {}
func (UpdateTask) isAction()    {}
func (DeleteTask) isAction()    {}
