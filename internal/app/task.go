// Package app provides the application layer that orchestrates task
// operations. It sits between the CLI/board and the backend client: every
// mutation goes to the server first and only a confirmed result reaches the
// store. CLI and board are thin adapters over TaskApp.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"
	"github.com/josephgoksu/TaskBoard/types"
)

// TaskAPI is the backend surface TaskApp needs. internal/api.Client
// implements it.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id models.ID) (models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, id models.ID, patch models.TaskPatch) (models.TaskPatch, error)
	DeleteTask(ctx context.Context, id models.ID) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// TaskApp provides task operations backed by the remote API and mirrored
// into the shared store.
type TaskApp struct {
	api   TaskAPI
	store *store.Store
	now   func() time.Time
}

// Option configures a TaskApp.
type Option func(*TaskApp)

// WithClock overrides the time source used for createdAt, updatedAt and
// completedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(a *TaskApp) {
		if now != nil {
			a.now = now
		}
	}
}

// NewTaskApp creates a new task application service. A nil store gets a
// fresh one.
func NewTaskApp(api TaskAPI, st *store.Store, opts ...Option) *TaskApp {
	if st == nil {
		st = store.New()
	}
	a := &TaskApp{api: api, store: st, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store returns the store the app dispatches into.
func (a *TaskApp) Store() *store.Store {
	return a.store
}

// LoadAllTasks fetches every task and replaces the stored list.
func (a *TaskApp) LoadAllTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	a.store.Dispatch(store.SetTasks{Tasks: tasks})
	slog.Debug("tasks loaded", "count", len(tasks))
	return tasks, nil
}

// GetUsers fetches every user and replaces the stored list.
func (a *TaskApp) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	a.store.Dispatch(store.SetUsers{Users: users})
	return users, nil
}

// GetCategories fetches every category and replaces the stored list.
func (a *TaskApp) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	a.store.Dispatch(store.SetCategories{Categories: categories})
	return categories, nil
}

// GetAllTasks fetches every task without touching the store.
func (a *TaskApp) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	return tasks, nil
}

// GetTask fetches one task without touching the store.
func (a *TaskApp) GetTask(ctx context.Context, id models.ID) (models.Task, error) {
	task, err := a.api.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// AddTask validates draft, creates the task remotely and appends the
// server's representation to the store.
func (a *TaskApp) AddTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	if err := draft.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}

	created, err := a.api.CreateTask(ctx, draft.NewTask(a.now()))
	if err != nil {
		return models.Task{}, fmt.Errorf("add task: %w", err)
	}
	a.store.Dispatch(store.AddTask{Task: created})
	slog.Debug("task added", "id", created.ID, "title", created.Title)
	return created, nil
}

// UpdateTask stamps updatedAt, sends patch and merges the server's answer
// into the stored task. It returns the merged task.
func (a *TaskApp) UpdateTask(ctx context.Context, id models.ID, patch models.TaskPatch) (models.Task, error) {
	if err := models.ValidateStruct(patch); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	patch.ID = id
	patch.UpdatedAt = models.TimestampPtr(a.now())

	updated, err := a.api.UpdateTask(ctx, id, patch)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	updated.ID = id
	a.store.Dispatch(store.UpdateTask{Patch: updated})

	merged, ok := a.store.GetState().FindTask(id)
	if !ok {
		merged = updated.ApplyTo(models.Task{ID: id})
	}
	slog.Debug("task updated", "id", id)
	return merged, nil
}

// DeleteTask removes the task remotely, then from the store.
func (a *TaskApp) DeleteTask(ctx context.Context, id models.ID) error {
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	a.store.Dispatch(store.DeleteTask{ID: id})
	slog.Debug("task deleted", "id", id)
	return nil
}

// ToggleTaskComplete flips task's completion and sends the whole task as
// the update. completedAt is set to now when completing and cleared
// otherwise.
func (a *TaskApp) ToggleTaskComplete(ctx context.Context, task models.Task) (models.Task, error) {
	task.Completed = !task.Completed
	if task.Completed {
		task.CompletedAt = models.TimestampPtr(a.now())
	} else {
		task.CompletedAt = nil
	}
	return a.UpdateTask(ctx, task.ID, models.PatchFromTask(task))
}

// State returns the current store snapshot.
func (a *TaskApp) State() *store.AppState {
	return a.store.GetState()
}

// Tasks returns the stored task list. Callers must not modify it.
func (a *TaskApp) Tasks() []models.Task {
	return a.store.GetState().Tasks
}

// Subscribe registers listener for store changes.
func (a *TaskApp) Subscribe(listener store.Listener) func() {
	return a.store.Subscribe(listener)
}
