// ABOUTME: Lipgloss styles for the terminal UI
// ABOUTME: Colours follow the banner and chat palette of the web client

package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#1a237e")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3949ab")).
			Padding(0, 1)

	chatStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2196f3")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90caf9")).Bold(true)
	botStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a5d6a7"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#757575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b81")).
			Background(lipgloss.Color("#3a0d2c")).
			Padding(0, 1)
)
