package models

import (
	"strings"
	"time"
)

// TaskDraft is the client-side input for a new task. Server-owned fields
// (id, completion state, timestamps) are not part of it.
type TaskDraft struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	User        ID        `json:"user,omitempty"`
	Category    ID        `json:"category,omitempty"`
	DueDate     Timestamp `json:"dueDate"`
}

// NewTaskDraft returns an empty draft with the default priority.
func NewTaskDraft() TaskDraft {
	return TaskDraft{Priority: PriorityMedium}
}

// Normalize trims the title and fills in the default priority.
func (d TaskDraft) Normalize() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// Validate checks the normalized draft.
func (d TaskDraft) Validate() error {
	return ValidateStruct(d.Normalize())
}

// NewTask stamps the fields the backend expects on create: not completed,
// created now, no completion time.
func (d TaskDraft) NewTask(now time.Time) Task {
	d = d.Normalize()
	return Task{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		User:        d.User,
		Category:    d.Category,
		Completed:   false,
		CreatedAt:   NewTimestamp(now),
		DueDate:     d.DueDate,
		CompletedAt: nil,
	}
}

// TaskPatch is a partial task. Nil fields are absent and left untouched by
// ApplyTo. Server responses to updates decode into a TaskPatch so that
// fields the server omits never clobber local values.
type TaskPatch struct {
	ID          ID                `json:"id,omitempty"`
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Priority    *Priority         `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	User        *ID               `json:"user,omitempty"`
	Category    *ID               `json:"category,omitempty"`
	Completed   *bool             `json:"completed,omitempty"`
	CreatedAt   *Timestamp        `json:"createdAt,omitempty"`
	DueDate     *Timestamp        `json:"dueDate,omitempty"`
	CompletedAt NullableTimestamp `json:"completedAt,omitzero"`
	UpdatedAt   *Timestamp        `json:"updatedAt,omitempty"`
}

// PatchFromTask returns a patch carrying every field of t.
func PatchFromTask(t Task) TaskPatch {
	p := TaskPatch{
		ID:          t.ID,
		Title:       &t.Title,
		Description: &t.Description,
		Priority:    &t.Priority,
		User:        &t.User,
		Category:    &t.Category,
		Completed:   &t.Completed,
		CreatedAt:   &t.CreatedAt,
		DueDate:     &t.DueDate,
		CompletedAt: NullTimestamp(),
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CompletedAt != nil {
		p.CompletedAt.Value = t.CompletedAt
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.User == nil && p.Category == nil && p.Completed == nil &&
		p.CreatedAt == nil && p.DueDate == nil && !p.CompletedAt.Set &&
		p.UpdatedAt == nil
}

// ApplyTo shallow-merges the present fields of p into t. The id of t is
// kept.
func (p TaskPatch) ApplyTo(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.User != nil {
		t.User = *p.User
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CreatedAt != nil {
		t.CreatedAt = *p.CreatedAt
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.CompletedAt.Set {
		t.CompletedAt = p.CompletedAt.Value
	}
	if p.UpdatedAt != nil {
		t.UpdatedAt = p.UpdatedAt
	}
	return t
}
