package view

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"
)

// Facade is the subset of app.TaskApp the controller drives.
type Facade interface {
	State() *store.AppState
	Subscribe(listener store.Listener) func()
	LoadAllTasks(ctx context.Context) ([]models.Task, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	AddTask(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	DeleteTask(ctx context.Context, id models.ID) error
	ToggleTaskComplete(ctx context.Context, task models.Task) (models.Task, error)
}

// ViewState is the list's local UI state.
type ViewState struct {
	Filter Filter           `json:"filter"`
	SortBy SortKey          `json:"sortBy"`
	Draft  models.TaskDraft `json:"draft"`
}

// Controller keeps the visible projection in step with the store. It is
// safe for concurrent use.
type Controller struct {
	app Facade

	mu          sync.RWMutex
	state       ViewState
	snapshot    *store.AppState
	visible     []models.Task
	unsubscribe func()
}

// NewController subscribes to app and derives the initial projection.
// Call Close to unsubscribe.
func NewController(app Facade, initial ViewState) *Controller {
	if initial.SortBy == "" {
		initial.SortBy = DefaultSort
	}
	if initial.Draft.Priority == "" {
		initial.Draft = models.NewTaskDraft()
	}
	c := &Controller{app: app, state: initial}
	c.rederive(app.State())
	c.unsubscribe = app.Subscribe(c.rederive)
	return c
}

// Close stops following the store.
func (c *Controller) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *Controller) rederive(state *store.AppState) {
	if state == nil {
		state = store.InitialState()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = state
	c.visible = Project(state.Tasks, c.state.Filter, c.state.SortBy)
}

func (c *Controller) update(fn func(*ViewState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.visible = Project(c.snapshot.Tasks, c.state.Filter, c.state.SortBy)
}

// SetShowCompleted toggles whether completed tasks are listed.
func (c *Controller) SetShowCompleted(show bool) {
	c.update(func(s *ViewState) { s.Filter.ShowCompleted = show })
}

// SetPriorityFilter restricts the list to one priority; empty clears it.
func (c *Controller) SetPriorityFilter(p models.Priority) {
	c.update(func(s *ViewState) { s.Filter.Priority = p })
}

// SetSearchTerm restricts the list to tasks whose title or description
// contains term.
func (c *Controller) SetSearchTerm(term string) {
	c.update(func(s *ViewState) { s.Filter.Search = term })
}

// SetSortBy changes the ordering.
func (c *Controller) SetSortBy(key SortKey) {
	if key == "" {
		key = DefaultSort
	}
	c.update(func(s *ViewState) { s.SortBy = key })
}

// SetDraft replaces the new-task form contents.
func (c *Controller) SetDraft(d models.TaskDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = d
}

// Draft returns the new-task form contents.
func (c *Controller) Draft() models.TaskDraft {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Draft
}

// ResetDraft clears the form back to its defaults.
func (c *Controller) ResetDraft() {
	c.SetDraft(models.NewTaskDraft())
}

// ViewState returns a copy of the UI state.
func (c *Controller) ViewState() ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Visible returns the current projection. Callers must not modify it.
func (c *Controller) Visible() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

// CompletedCount counts completed tasks among the visible ones.
func (c *Controller) CompletedCount() int {
	return CompletedCount(c.Visible())
}

// Users returns the stored users.
func (c *Controller) Users() []models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Users
}

// Categories returns the stored categories.
func (c *Controller) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Categories
}

// Task returns the stored task with the given id.
func (c *Controller) Task(id models.ID) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.FindTask(id)
}

// LoadErrors records which of the three reads in LoadAll failed.
type LoadErrors struct {
	Tasks      error
	Users      error
	Categories error
}

// Err returns the first failure, or nil when every read succeeded.
func (e LoadErrors) Err() error {
	switch {
	case e.Tasks != nil:
		return e.Tasks
	case e.Users != nil:
		return e.Users
	default:
		return e.Categories
	}
}

// LoadAll reads tasks, users and categories. A failed read does not stop
// the others, and each successful read is already in the store.
func (c *Controller) LoadAll(ctx context.Context) LoadErrors {
	var res LoadErrors
	if _, res.Tasks = c.app.LoadAllTasks(ctx); res.Tasks != nil {
		slog.Error("failed to load tasks", "error", res.Tasks)
	}
	if _, res.Users = c.app.GetUsers(ctx); res.Users != nil {
		slog.Error("failed to load users", "error", res.Users)
	}
	if _, res.Categories = c.app.GetCategories(ctx); res.Categories != nil {
		slog.Error("failed to load categories", "error", res.Categories)
	}
	return res
}

// Load runs LoadAll and returns its first failure.
func (c *Controller) Load(ctx context.Context) error {
	return c.LoadAll(ctx).Err()
}

// SubmitDraft creates a task from the draft. An empty title is ignored and
// reported as (false, nil) without any remote call. On success the draft is
// reset.
func (c *Controller) SubmitDraft(ctx context.Context) (bool, error) {
	draft := c.Draft()
	if strings.TrimSpace(draft.Title) == "" {
		return false, nil
	}
	if _, err := c.app.AddTask(ctx, draft); err != nil {
		slog.Error("failed to add task", "title", draft.Title, "error", err)
		return false, err
	}
	c.ResetDraft()
	return true, nil
}

// ErrUnknownTask is returned when a command names a task the store does not
// hold.
var ErrUnknownTask = errors.New("task not loaded")

// Toggle flips completion of the stored task with the given id.
func (c *Controller) Toggle(ctx context.Context, id models.ID) (models.Task, error) {
	task, ok := c.Task(id)
	if !ok {
		return models.Task{}, ErrUnknownTask
	}
	updated, err := c.app.ToggleTaskComplete(ctx, task)
	if err != nil {
		slog.Error("failed to toggle task", "id", id, "error", err)
		return models.Task{}, err
	}
	return updated, nil
}

// Delete removes the task with the given id.
func (c *Controller) Delete(ctx context.Context, id models.ID) error {
	if err := c.app.DeleteTask(ctx, id); err != nil {
		slog.Error("failed to delete task", "id", id, "error", err)
		return err
	}
	return nil
}
