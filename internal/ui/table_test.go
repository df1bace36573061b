package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Priority"},
		Rows: [][]string{
			{"abc123", "First task", "high"},
			{"def456", "Second task with longer name", "medium"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 6, widths[0])
	assert.Equal(t, 28, widths[1])
	assert.Equal(t, 8, widths[2]) // header is longest
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"a", "This is a very long description that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_ColumnWidths_Unicode(t *testing.T) {
	table := &Table{
		Headers: []string{"T"},
		Rows:    [][]string{{"café"}},
	}
	assert.Equal(t, 4, table.ColumnWidths()[0])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Alice"},
			{"2", "Bob"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "This is w…")
}

func TestTable_RowStyle(t *testing.T) {
	styled := 0
	table := &Table{
		Headers: []string{"Title"},
		Rows:    [][]string{{"a"}, {"b"}},
		RowStyle: func(row int) *lipgloss.Style {
			if row == 1 {
				styled++
				return &StyleCompleted
			}
			return nil
		},
	}

	out := table.Render()
	assert.Contains(t, out, "b")
	assert.Equal(t, 1, styled)
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "short", fitCell("short", 10))
	assert.Equal(t, "…", fitCell("long", 1))
	assert.Equal(t, "ab…", fitCell("abcdef", 3))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
		{"é", 3, "é  "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Due"},
		Rows: [][]string{
			{"1", "Alice"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Alice")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}
