package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for detail panel titles.
	LabelStyle = lipgloss.NewStyle().Width(12).Faint(true)
)

// WithTrend marks a formatted close with the direction from the previous close.
func WithTrend(s string, current, previous float64) string {
	if previous == 0 {
		return s
	}

	if current > previous {
		return s + " ▲"
	} else if current < previous {
		return s + " ▼"
	}

	return s
}
