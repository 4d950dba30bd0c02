package lipgloss

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles used across commands.
var (
	Red    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	Green  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	Yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C"))
	Info   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))

	// BoxStyle renders summary blocks (scan results, index stats).
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)
)
