package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskBoard/internal/app"
	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/josephgoksu/TaskBoard/internal/utils"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"
)

const (
	idWidth    = 8
	titleWidth = 48
)

// StatusIcon returns the checkbox shown for a task.
func StatusIcon(t models.Task) string {
	if t.Completed {
		return StyleSuccess.Render("[x]")
	}
	return StyleSubtle.Render("[ ]")
}

// PriorityLabel renders a priority in its color.
func PriorityLabel(p models.Priority) string {
	if p == "" {
		return StyleSubtle.Render("-")
	}
	return PriorityStyle(p).Render(string(p))
}

// FormatDue renders a due date relative to now. Overdue incomplete tasks
// are highlighted.
func FormatDue(t models.Task, now time.Time) string {
	if t.DueDate.IsZero() {
		return StyleSubtle.Render("-")
	}
	date := t.DueDate.UTC().Format(models.DateLayout)
	if !t.Completed && t.DueDate.Before(startOfDay(now)) {
		return StyleOverdue.Render(date + " (overdue)")
	}
	return date
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// UserName resolves a user id to a name. Unknown ids are shown as-is.
func UserName(state *store.AppState, id models.ID) string {
	if id == "" {
		return "-"
	}
	if u, ok := state.FindUser(id); ok {
		return u.Name
	}
	return string(id)
}

// CategoryLabel resolves a category id to its colored name. Unknown ids are
// shown as-is.
func CategoryLabel(state *store.AppState, id models.ID) string {
	if id == "" {
		return "-"
	}
	if c, ok := state.FindCategory(id); ok {
		return CategoryStyle(c).Render(c.Name)
	}
	return string(id)
}

// TaskTable builds the table for a task list. Completed rows are dimmed.
func TaskTable(tasks []models.Task, state *store.AppState, now time.Time) *Table {
	table := &Table{
		Headers: []string{"ID", "", "Title", "Priority", "Due", "User", "Category"},
		RowStyle: func(row int) *lipgloss.Style {
			if tasks[row].Completed {
				return &StyleCompleted
			}
			return nil
		},
	}
	for _, t := range tasks {
		table.Rows = append(table.Rows, []string{
			util.ShortID(t.ID, idWidth),
			StatusIcon(t),
			utils.Truncate(t.Title, titleWidth),
			PriorityLabel(t.Priority),
			FormatDue(t, now),
			UserName(state, t.User),
			CategoryLabel(state, t.Category),
		})
	}
	return table
}

// RenderTaskList writes the table and a footer with the visible and
// completed counts.
func RenderTaskList(w io.Writer, tasks []models.Task, state *store.AppState, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No tasks to show."))
	} else {
		fmt.Fprint(w, TaskTable(tasks, state, now).Render())
	}
	fmt.Fprintln(w, Footer(len(tasks), countCompleted(tasks)))
}

// RenderGroupedTaskList writes one section per priority, highest first,
// skipping empty groups. The footer covers all groups.
func RenderGroupedTaskList(w io.Writer, groups map[models.Priority][]models.Task, state *store.AppState, now time.Time) {
	total, completed := 0, 0
	for _, p := range []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		tasks := groups[p]
		if len(tasks) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", PriorityStyle(p).Bold(true).Render(utils.ToTitle(string(p))), StyleSubtle.Render(fmt.Sprintf("(%d)", len(tasks))))
		fmt.Fprint(w, TaskTable(tasks, state, now).Render())
		fmt.Fprintln(w)
		total += len(tasks)
		completed += countCompleted(tasks)
	}
	if total == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No tasks to show."))
	}
	fmt.Fprintln(w, Footer(total, completed))
}

// Footer summarizes a projection.
func Footer(visible, completed int) string {
	noun := "tasks"
	if visible == 1 {
		noun = "task"
	}
	return StyleSubtle.Render(fmt.Sprintf(" %d %s shown, %d completed", visible, noun, completed))
}

func countCompleted(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// RenderTaskDetail writes a single task with user and category names
// resolved.
func RenderTaskDetail(w io.Writer, t models.Task, state *store.AppState, now time.Time) {
	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf("%-10s", label)) + " " + value + "\n")
	}

	status := StyleWarning.Render("pending")
	if t.Completed {
		status = StyleSuccess.Render("completed")
		if t.CompletedAt != nil {
			status += StyleSubtle.Render(" at " + t.CompletedAt.UTC().Format(time.DateTime))
		}
	}

	row("ID", string(t.ID))
	row("Status", status)
	row("Priority", PriorityLabel(t.Priority))
	row("Due", FormatDue(t, now))
	row("User", UserName(state, t.User))
	row("Category", CategoryLabel(state, t.Category))
	if !t.CreatedAt.IsZero() {
		row("Created", t.CreatedAt.UTC().Format(time.DateTime))
	}
	if t.UpdatedAt != nil && !t.UpdatedAt.IsZero() {
		row("Updated", t.UpdatedAt.UTC().Format(time.DateTime))
	}
	if d := strings.TrimSpace(t.Description); d != "" {
		sb.WriteString("\n" + WrapText(d, 60) + "\n")
	}

	fmt.Fprintln(w, RenderPanel(t.Title, strings.TrimRight(sb.String(), "\n")))
}

// RenderStats writes task counts and the completion rate.
func RenderStats(w io.Writer, s app.TaskStats) {
	table := &Table{
		Headers: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Total", fmt.Sprint(s.Total)},
			{"Completed", fmt.Sprint(s.Completed)},
			{"Pending", fmt.Sprint(s.Pending)},
			{PriorityLabel(models.PriorityHigh), fmt.Sprint(s.HighPriority)},
			{PriorityLabel(models.PriorityMedium), fmt.Sprint(s.MediumPriority)},
			{PriorityLabel(models.PriorityLow), fmt.Sprint(s.LowPriority)},
		},
	}
	fmt.Fprint(w, table.Render())
	fmt.Fprintf(w, " %s %s\n", StyleSubtle.Render("Completion:"), ProgressBar(s.CompletionRate, 20))
}

// ProgressBar renders percent as a fixed-width bar.
func ProgressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d%%", bar, percent)
}

// RenderUsers writes the user list.
func RenderUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No users."))
		return
	}
	table := &Table{Headers: []string{"ID", "Name", "Email", "Role"}}
	for _, u := range users {
		table.Rows = append(table.Rows, []string{string(u.ID), u.Name, u.Email, utils.ToTitle(u.Role)})
	}
	fmt.Fprint(w, table.Render())
}

// RenderCategories writes the category list with color swatches.
func RenderCategories(w io.Writer, categories []models.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No categories."))
		return
	}
	table := &Table{Headers: []string{"ID", "Name", "Color"}}
	for _, c := range categories {
		swatch := "-"
		if c.Color != "" {
			swatch = CategoryStyle(c).Render("●") + " " + c.Color
		}
		table.Rows = append(table.Rows, []string{string(c.ID), c.Name, swatch})
	}
	fmt.Fprint(w, table.Render())
}

// RenderStaleWarning tells the user the data shown comes from the snapshot
// cache because the backend could not be reached.
func RenderStaleWarning(w io.Writer, cause error, savedAt, now time.Time) {
	msg := fmt.Sprintf("Showing cached data from %s.", FormatAge(now.Sub(savedAt)))
	if cause != nil {
		msg += "\n" + StyleSubtle.Render(utils.FirstLine(cause.Error()))
	}
	fmt.Fprintln(w, RenderWarningPanel("Backend unavailable", msg))
}

// RenderPartialWarning notes reference lists served from the snapshot while
// the task list itself is current.
func RenderPartialWarning(w io.Writer, lists []string, cause error, savedAt, now time.Time) {
	fmt.Fprintf(w, "%s Could not load %s; using the copy cached %s.\n",
		Icon("!", StyleWarning), strings.Join(lists, " and "), FormatAge(now.Sub(savedAt)))
	if cause != nil {
		fmt.Fprintln(w, "  "+StyleSubtle.Render(utils.FirstLine(cause.Error())))
	}
}

// FormatAge renders a duration as a coarse "N units ago".
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
