package telemetry

import "time"

// Event represents a single telemetry event
type Event struct {
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"ts"`
	Props     map[string]any `json:"props,omitempty"`
}

// Event names
const (
	EventCommandExecuted = "command_executed"
	EventCommandError    = "command_error"
	EventBoardOpened     = "board_opened"
)

// NewEvent creates a new event with the given name
func NewEvent(name string) Event {
	return Event{
		Name:      name,
		Timestamp: time.Now().UTC(),
		Props:     make(map[string]any),
	}
}

// WithProp adds a property to the event
func (e Event) WithProp(key string, value any) Event {
	if e.Props == nil {
		e.Props = make(map[string]any)
	}
	e.Props[key] = value
	return e
}

// CommandEvent describes one CLI invocation. Only the command path,
// duration and outcome are recorded; never arguments or task content.
func CommandEvent(command string, duration time.Duration, err error) Event {
	name := EventCommandExecuted
	if err != nil {
		name = EventCommandError
	}
	return NewEvent(name).
		WithProp("command", command).
		WithProp("duration_ms", duration.Milliseconds()).
		WithProp("success", err == nil)
}
