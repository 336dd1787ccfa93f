package ui

import "github.com/charmbracelet/lipgloss"

var (
	fuchsia = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	green   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	red     = lipgloss.AdaptiveColor{Light: "#ED567A", Dark: "#ED567A"}
	subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	activeTabStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(fuchsia)

	itemStyle = lipgloss.NewStyle()

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtle)

	statusStyle = lipgloss.NewStyle().
			Foreground(green)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)

	transcriptStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0, 0, 1)
)
