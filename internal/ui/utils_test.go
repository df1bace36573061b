package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		contains []string
	}{
		{"short text", "hello world", 20, []string{"hello world"}},
		{"needs wrap", "hello world foo bar", 10, []string{"hello", "world", "foo", "bar"}},
		{"zero width", "hello", 0, []string{"hello"}},
		{"keeps newlines", "a\nb", 10, []string{"a\nb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapText(tt.input, tt.width)
			for _, substr := range tt.contains {
				if !strings.Contains(result, substr) {
					t.Errorf("WrapText(%q, %d) = %q, expected to contain %q", tt.input, tt.width, result, substr)
				}
			}
		})
	}
}

func TestWrapText_LineWidth(t *testing.T) {
	result := WrapText("one two three four five six", 9)
	for _, line := range strings.Split(result, "\n") {
		if len(line) > 9 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestPanel(t *testing.T) {
	t.Run("basic panel", func(t *testing.T) {
		result := NewPanel("Title", "Content").Render()

		if !strings.Contains(result, "Title") {
			t.Error("Panel should contain title")
		}
		if !strings.Contains(result, "Content") {
			t.Error("Panel should contain content")
		}
	})

	t.Run("panel without title", func(t *testing.T) {
		result := NewPanel("", "Content only").Render()

		if !strings.Contains(result, "Content only") {
			t.Error("Panel should contain content")
		}
	})

	t.Run("panel with border color", func(t *testing.T) {
		result := NewPanel("Info", "Details").WithBorderColor(ColorSuccess).Render()

		if !strings.Contains(result, "Details") {
			t.Error("Panel should contain content")
		}
	})

	t.Run("warning panel", func(t *testing.T) {
		result := RenderWarningPanel("Offline", "showing cached data")
		if !strings.Contains(result, "Offline") {
			t.Error("Panel should contain title")
		}
	})
}

func TestRenderPageHeader(t *testing.T) {
	var buf bytes.Buffer
	RenderPageHeader(&buf, "Tasks", "3 visible")

	out := buf.String()
	if !strings.Contains(out, "Tasks") || !strings.Contains(out, "3 visible") {
		t.Errorf("unexpected header: %q", out)
	}
}
