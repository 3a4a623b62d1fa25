package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sweep-radar.klederson.com/internal/config"
)

var menuKeys = []struct{ key, label string }{
	{"Spc", " pause"},
	{"S", "im"},
	{"C", "onnect"},
	{"D", "isconnect"},
	{"+/-", " range"},
	{"[/]", " fade"},
	{"R", "egen"},
	{"Q", "uit"},
}

// RenderMenuBar renders the top menu bar. Key hints that do not fit the
// width are dropped from the right.
func RenderMenuBar(width int, mode Mode, running bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	status := StyleStatusLive.Render("LIVE")
	if !running {
		status = StyleStatusPaused.Render("PAUSED")
	}
	right := status + "  " + mode.Render() + " "

	left := StyleMenuKey.Render(title)
	budget := width - 2 - lipgloss.Width(right) // bar padding
	for _, k := range menuKeys {
		item := "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
		if lipgloss.Width(left)+lipgloss.Width(item) > budget {
			break
		}
		left += item
	}

	gap := budget - lipgloss.Width(left)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
