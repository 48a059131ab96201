package ui

import "github.com/charmbracelet/lipgloss"

// Palette lifted from the application's original theme.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6")).
			Bold(true).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1).
			Width(22)

	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8b5cf6")).
			Bold(true).
			MarginTop(1)

	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
)
