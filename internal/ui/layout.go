package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the radar panel and readout side by side, with the
// menu bar on top and the status bar at the bottom.
func ComposeLayout(menuBar, radarPanel, readout, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, readout)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// truncate cuts every line of s to at most width cells, keeping styling.
func truncate(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
