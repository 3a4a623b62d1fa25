package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the data shown in the bottom bar.
type Status struct {
	Running  bool
	Contacts int
	Sweep    int
	MaxRange float64
	Unit     string
	Frames   uint64
	Flash    string // Transient error, shown in place of the counters
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	status := StyleStatusLive.Render("[LIVE]")
	if !st.Running {
		status = StyleStatusPaused.Render("[PAUSED]")
	}

	var info string
	if st.Flash != "" {
		info = " " + StyleStatusError.Render(st.Flash)
	} else {
		info = StyleStatusBar.Padding(0).Render(fmt.Sprintf(" Contacts: %d  Sweep: %d°  Range: 0-%.0f%s  Frames: %d",
			st.Contacts, st.Sweep, st.MaxRange, st.Unit, st.Frames))
	}

	content := status + info
	inner := width - 2
	if w := lipgloss.Width(content); w > inner && inner > 0 {
		content = truncate(content, inner)
	}
	gap := inner - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
