package tui

import "github.com/charmbracelet/lipgloss"

var (
	terminalGreen = lipgloss.Color("#4AF626")
	dim           = lipgloss.Color("#2E7D32")

	screenStyle = lipgloss.NewStyle().Foreground(terminalGreen)

	tabStyle = lipgloss.NewStyle().
			Foreground(terminalGreen).
			Padding(0, 2)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#000000")).
			Background(terminalGreen).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(terminalGreen).
			Bold(true)

	hintStyle = lipgloss.NewStyle().Foreground(dim)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)
