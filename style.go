package main

import "github.com/charmbracelet/lipgloss"

var (
	paragraphStyle = lipgloss.NewStyle().
			Margin(1, 2, 0, 2)

	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})
)

func paragraph(s string) string {
	return paragraphStyle.Render(s)
}

func keyword(s string) string {
	return keywordStyle.Render(s)
}
