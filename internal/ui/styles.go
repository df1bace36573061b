package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskBoard/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Input Box Style for the add/search field
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Board rows
	StyleCursor    = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleCompleted = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleOverdue   = lipgloss.NewStyle().Foreground(ColorError)

	// Priority labels
	StylePriorityHigh   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePriorityMedium = lipgloss.NewStyle().Foreground(ColorWarning)
	StylePriorityLow    = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// PriorityStyle returns the style for a priority label.
func PriorityStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return StylePriorityHigh
	case models.PriorityMedium:
		return StylePriorityMedium
	case models.PriorityLow:
		return StylePriorityLow
	default:
		return StyleSubtle
	}
}

// CategoryStyle colors a category label with its hex color when it has one.
func CategoryStyle(c models.Category) lipgloss.Style {
	if c.Color == "" {
		return StyleText
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
}
