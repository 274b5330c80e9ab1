package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	workStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	wellnessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pointsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)
