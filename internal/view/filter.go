// Package view derives what the task list shows from the store state and
// holds the list's UI state (filters, sort, draft).
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/josephgoksu/TaskBoard/models"
)

// Filter selects the tasks a list shows. All conditions must hold.
type Filter struct {
	ShowCompleted bool            `json:"showCompleted"`
	Priority      models.Priority `json:"priority,omitempty"`
	Search        string          `json:"search,omitempty"`
}

// Match reports whether t passes the filter.
func (f Filter) Match(t models.Task) bool {
	if !f.ShowCompleted && t.Completed {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// SortKey names a list ordering. A leading "-" reverses it.
type SortKey string

const (
	SortByDueDate   SortKey = "dueDate"
	SortByCreatedAt SortKey = "createdAt"
	SortByNewest    SortKey = "-createdAt"
	SortByPriority  SortKey = "priority"
	SortByTitle     SortKey = "title"

	DefaultSort = SortByDueDate
)

// SortKeys lists the keys the board cycles through.
func SortKeys() []SortKey {
	return []SortKey{SortByDueDate, SortByCreatedAt, SortByNewest, SortByPriority, SortByTitle}
}

// ParseSortKey validates s. Empty input yields DefaultSort.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	switch strings.TrimPrefix(s, "-") {
	case "dueDate", "createdAt", "priority", "title":
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q (want dueDate, createdAt, priority or title, optionally prefixed with -)", s)
}

func (k SortKey) base() (string, bool) {
	if k == "" {
		k = DefaultSort
	}
	s := string(k)
	if strings.HasPrefix(s, "-") {
		return s[1:], true
	}
	return s, false
}

// compare orders two tasks for this key. Zero dates sort last regardless
// of direction.
func (k SortKey) compare(a, b models.Task) int {
	field, desc := k.base()
	sign := 1
	if desc {
		sign = -1
	}
	switch field {
	case "createdAt":
		return compareTime(a.CreatedAt.Time, b.CreatedAt.Time, sign)
	case "priority":
		// high first
		return sign * cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
	case "title":
		return sign * cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return compareTime(a.DueDate.Time, b.DueDate.Time, sign)
	}
}

func compareTime(a, b time.Time, sign int) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return sign * a.Compare(b)
}

// Sort returns a stably sorted copy of tasks.
func Sort(tasks []models.Task, key SortKey) []models.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, key.compare)
	return out
}

// Project filters and sorts tasks into a new slice.
func Project(tasks []models.Task, f Filter, key SortKey) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, key.compare)
	return out
}

// CompletedCount counts completed tasks in tasks.
func CompletedCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// GroupByPriority buckets tasks by priority, preserving order.
func GroupByPriority(tasks []models.Task) map[models.Priority][]models.Task {
	groups := make(map[models.Priority][]models.Task, 3)
	for _, p := range models.Priorities() {
		groups[p] = []models.Task{}
	}
	for _, t := range tasks {
		groups[t.Priority] = append(groups[t.Priority], t)
	}
	return groups
}

// HighPriority returns the high-priority tasks, completed ones included, in
// their original order.
func HighPriority(tasks []models.Task) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.Priority == models.PriorityHigh {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns incomplete tasks due on or before now plus days,
// overdue ones included, soonest first.
func DueWithin(tasks []models.Task, days int, now time.Time) []models.Task {
	limit := now.AddDate(0, 0, days)
	var out []models.Task
	for _, t := range tasks {
		if t.Completed || t.DueDate.IsZero() {
			continue
		}
		if !t.DueDate.After(limit) {
			out = append(out, t)
		}
	}
	return Sort(out, SortByDueDate)
}
