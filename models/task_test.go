package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "string id", input: `"abc-1"`, want: "abc-1"},
		{name: "numeric id", input: `42`, want: "42"},
		{name: "null id", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestTask_DecodeNumericReferences(t *testing.T) {
	input := `{"id": 7, "title": "Fix bug", "priority": "high", "user": 3, "category": "c1",
		"completed": false, "createdAt": "2025-01-10T09:30:00.000Z", "dueDate": "2025-01-15", "completedAt": null}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(input), &task))

	assert.Equal(t, ID("7"), task.ID)
	assert.Equal(t, ID("3"), task.User)
	assert.Equal(t, ID("c1"), task.Category)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.UpdatedAt)
	assert.True(t, task.Consistent())
	assert.True(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Equal(task.DueDate.Time))
}

func TestTask_EncodeNullCompletedAt(t *testing.T) {
	task := Task{Title: "A", Priority: PriorityLow, CreatedAt: NewTimestamp(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"completedAt":null`)
	assert.Contains(t, out, `"createdAt":"2025-03-01T12:00:00.000Z"`)
	assert.Contains(t, out, `"dueDate":""`)
	assert.NotContains(t, out, `"id"`)
	assert.NotContains(t, out, `"updatedAt"`)
}

func TestTimestamp_Parse(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "", want: time.Time{}},
		{input: "2025-01-02", want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{input: "2025-01-02T03:04:05Z", want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{input: "2025-01-02T03:04:05.123Z", want: time.Date(2025, 1, 2, 3, 4, 5, 123000000, time.UTC)},
		{input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_String(t *testing.T) {
	assert.Equal(t, "", Timestamp{}.String())
	assert.Equal(t, "2025-06-30", NewTimestamp(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)).String())

	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, "2025-06-30T15:00:00.000Z", NewTimestamp(time.Date(2025, 6, 30, 10, 0, 0, 0, est)).String())
}

func TestTaskDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   TaskDraft
		wantErr bool
	}{
		{name: "valid draft", draft: TaskDraft{Title: "Write docs", Priority: PriorityHigh}},
		{name: "default priority", draft: TaskDraft{Title: "Write docs"}},
		{name: "empty title", draft: TaskDraft{Title: ""}, wantErr: true},
		{name: "whitespace title", draft: TaskDraft{Title: "   \t"}, wantErr: true},
		{name: "title too long", draft: TaskDraft{Title: strings.Repeat("x", 256)}, wantErr: true},
		{name: "unknown priority", draft: TaskDraft{Title: "Write docs", Priority: "urgent"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskDraft_NewTask(t *testing.T) {
	now := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)
	draft := TaskDraft{Title: "  Ship release  ", Description: "v1.2"}

	task := draft.NewTask(now)

	assert.Equal(t, "Ship release", task.Title)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.True(t, now.Equal(task.CreatedAt.Time))
	assert.Empty(t, task.ID)
}

func TestTaskPatch_ApplyToIsShallowMerge(t *testing.T) {
	original := Task{
		ID:          "1",
		Title:       "Buy milk",
		Description: "2 litres",
		Priority:    PriorityLow,
		User:        "u1",
	}
	done := true

	merged := TaskPatch{ID: "1", Completed: &done}.ApplyTo(original)

	assert.True(t, merged.Completed)
	assert.Equal(t, "Buy milk", merged.Title)
	assert.Equal(t, "2 litres", merged.Description)
	assert.Equal(t, PriorityLow, merged.Priority)
	assert.Equal(t, ID("u1"), merged.User)
	assert.False(t, original.Completed, "original must not change")
}

func TestTaskPatch_DecodeDistinguishesNullFromAbsent(t *testing.T) {
	completedAt := TimestampPtr(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	task := Task{ID: "9", Title: "Done thing", Completed: true, CompletedAt: completedAt}

	var absent TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"9","title":"Renamed"}`), &absent))
	assert.False(t, absent.CompletedAt.Set)
	merged := absent.ApplyTo(task)
	assert.Equal(t, "Renamed", merged.Title)
	assert.NotNil(t, merged.CompletedAt)

	var cleared TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"9","completed":false,"completedAt":null}`), &cleared))
	assert.True(t, cleared.CompletedAt.Set)
	merged = cleared.ApplyTo(task)
	assert.False(t, merged.Completed)
	assert.Nil(t, merged.CompletedAt)
	assert.True(t, merged.Consistent())
}

func TestTaskPatch_EncodeOmitsAbsentFields(t *testing.T) {
	title := "New title"
	data, err := json.Marshal(TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New title"}`, string(data))

	data, err = json.Marshal(TaskPatch{CompletedAt: NullTimestamp()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completedAt":null}`, string(data))
}

func TestPatchFromTask_RoundTrip(t *testing.T) {
	task := Task{
		ID:        "3",
		Title:     "Plan sprint",
		Priority:  PriorityMedium,
		CreatedAt: NewTimestamp(time.Date(2025, 4, 4, 4, 4, 4, 0, time.UTC)),
	}

	patch := PatchFromTask(task)
	assert.False(t, patch.IsEmpty())
	assert.True(t, patch.CompletedAt.Set)
	assert.Equal(t, task, patch.ApplyTo(Task{ID: "3"}))
	assert.True(t, TaskPatch{}.IsEmpty())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, Priority(""), p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Len(t, Priorities(), 3)
}
