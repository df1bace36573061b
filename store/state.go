package store

import (
	"slices"

	"github.com/josephgoksu/TaskBoard/models"
)

// AppState is an immutable snapshot of the shared client state. A snapshot
// is never modified after it is published; transitions build a new one.
type AppState struct {
	Tasks      []models.Task     `json:"tasks" yaml:"tasks"`
	Users      []models.User     `json:"users" yaml:"users"`
	Categories []models.Category `json:"categories" yaml:"categories"`
}

// InitialState returns the empty state.
func InitialState() *AppState {
	return &AppState{
		Tasks:      []models.Task{},
		Users:      []models.User{},
		Categories: []models.Category{},
	}
}

// FindTask returns the task with the given id.
func (s *AppState) FindTask(id models.ID) (models.Task, bool) {
	if i := s.taskIndex(id); i >= 0 {
		return s.Tasks[i], true
	}
	return models.Task{}, false
}

// FindUser returns the user with the given id.
func (s *AppState) FindUser(id models.ID) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FindCategory returns the category with the given id.
func (s *AppState) FindCategory(id models.ID) (models.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s *AppState) taskIndex(id models.ID) int {
	return slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
}

// clone returns a shallow copy of s whose slice headers may be replaced
// independently.
func (s *AppState) clone() *AppState {
	c := *s
	return &c
}
