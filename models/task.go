package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ID identifies a task, user or category. The backend has emitted both
// numeric and string identifiers over time; ID is always a string and
// accepts either form on decode.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id %s: %w", raw, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns all priority levels, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority parses a priority name case-insensitively.
// An empty string yields an empty priority and no error.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" || p.Valid() {
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
}

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: high > medium > low > unknown.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task is a unit of work as stored by the backend.
type Task struct {
	ID          ID         `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	User        ID         `json:"user,omitempty" yaml:"user,omitempty"`
	Category    ID         `json:"category,omitempty" yaml:"category,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CreatedAt   Timestamp  `json:"createdAt" yaml:"createdAt"`
	DueDate     Timestamp  `json:"dueDate" yaml:"dueDate"`
	CompletedAt *Timestamp `json:"completedAt" yaml:"completedAt"` // null unless completed
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Consistent reports whether CompletedAt is set exactly when Completed is true.
func (t Task) Consistent() bool {
	return t.Completed == (t.CompletedAt != nil)
}

// User is a person tasks can be assigned to.
type User struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role" yaml:"role"`
}

// Category groups tasks under a coloured label.
type Category struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.Field(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
