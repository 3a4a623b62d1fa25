package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"sweep-radar.klederson.com/internal/radar"
)

// Readout is the data shown in the side panel.
type Readout struct {
	Angle     int
	Distance  float64
	HasSample bool
	MaxRange  float64
	Fade      time.Duration
	Unit      string
	Mode      Mode
	History   []float64         // Recent distances, oldest first
	Contacts  []radar.Detection // Live detections, oldest first
}

// RenderReadout renders the side panel: the latest reading, the current
// settings, a distance sparkline and the list of live contacts, newest
// first. The output is exactly height lines.
func RenderReadout(r Readout, width, height int) string {
	innerW := width - 4
	if innerW < 16 {
		innerW = 16
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	sep := StyleRing.Render(strings.Repeat("-", innerW))
	lines := []string{StylePanelTitle.Render("READOUT"), sep}

	angle, distance := "--°", "-- "+r.Unit
	if r.HasSample {
		angle = fmt.Sprintf("%d°", r.Angle)
		if r.Distance > 0 {
			distance = fmt.Sprintf("%.0f %s", r.Distance, r.Unit)
		}
	}
	fields := []struct{ label, value string }{
		{"Angle", StyleValue.Render(angle)},
		{"Distance", StyleValue.Render(distance)},
		{"Range", StyleValue.Render(fmt.Sprintf("%.0f %s", r.MaxRange, r.Unit))},
		{"Fade", StyleValue.Render(fmt.Sprintf("%.1fs", r.Fade.Seconds()))},
		{"Mode", r.Mode.Render()},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+f.value)
	}

	lines = append(lines, "", StyleLabel.Render("  Distance History:"))
	if len(r.History) > 0 {
		spark := renderSparkline(r.History, innerW-4)
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	} else {
		lines = append(lines, StyleHelp.Render("  waiting for samples"))
	}

	lines = append(lines, "", StylePanelTitle.Render(fmt.Sprintf("CONTACTS [%d]", len(r.Contacts))), sep)

	space := innerH - len(lines)
	if len(r.Contacts) == 0 && space > 0 {
		lines = append(lines, StyleHelp.Render(" No echoes..."))
	}
	barW := innerW - 18
	if barW < 4 {
		barW = 4
	}
	for i := len(r.Contacts) - 1; i >= 0 && space > 0; i-- {
		d := r.Contacts[i]
		text := StyleValue.Render(fmt.Sprintf(" %3d° %5.0f%-2s ", d.Angle, d.Distance, r.Unit))
		lines = append(lines, text+renderFadeBar(d.Alpha, barW))
		space--
	}

	for i := range lines {
		lines[i] = truncate(lines[i], innerW)
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))

	// lipgloss Height() only sets a minimum; it won't truncate overflow.
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// renderFadeBar draws a contact's remaining visibility as a bar.
func renderFadeBar(alpha float64, width int) string {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	filled := int(math.Round(alpha * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := StyleEcho.Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	// Find min/max for scaling
	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}
