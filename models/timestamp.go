package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the date-only wire form used for due dates.
	DateLayout = "2006-01-02"
	// wireLayout matches a JavaScript Date.toISOString() value.
	wireLayout = "2006-01-02T15:04:05.000Z07:00"
)

var parseLayouts = []string{
	time.RFC3339Nano,
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp is an ISO-8601 instant. It tolerates the loose forms the
// backend stores (empty strings, bare dates) and encodes in UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// TimestampPtr returns a pointer to a Timestamp wrapping t.
func TimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// ParseTimestamp parses s in any accepted layout. Empty input yields the
// zero Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// String renders the wire form: "" for zero, a bare date for midnight UTC,
// otherwise RFC 3339 with milliseconds in UTC.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	u := ts.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(DateLayout)
	}
	return u.Format(wireLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to zero.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	return ts.UnmarshalText([]byte(s))
}

// NullableTimestamp distinguishes an absent field from an explicit null,
// which a partial update needs for completedAt.
type NullableTimestamp struct {
	Set   bool
	Value *Timestamp
}

// NullTimestamp is an explicit null.
func NullTimestamp() NullableTimestamp {
	return NullableTimestamp{Set: true}
}

// SomeTimestamp is an explicit value.
func SomeTimestamp(t time.Time) NullableTimestamp {
	return NullableTimestamp{Set: true, Value: TimestampPtr(t)}
}

// IsZero reports whether the field is absent; used by omitzero.
func (n NullableTimestamp) IsZero() bool {
	return !n.Set
}

// MarshalJSON implements json.Marshaler.
func (n NullableTimestamp) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return n.Value.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// key is present, so Set is always true afterwards.
func (n *NullableTimestamp) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var ts Timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Value = &ts
	return nil
}
