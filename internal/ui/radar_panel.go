package ui

import (
	"fmt"
	"strings"
)

// RadarInner returns the content size available inside a radar panel of the
// given outer size, leaving room for the border and the legend line.
func RadarInner(width, height int) (cols, rows int) {
	return max(width-2, 1), max(height-3, 1)
}

// RenderRadarPanel wraps the rendered radar grid with a border and legend.
func RenderRadarPanel(width, height int, radarContent, legend string) string {
	content := radarContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// RenderLegend describes the radar symbols on one line.
func RenderLegend(width int, maxRange float64, unit string) string {
	parts := []string{
		StyleEcho.Render("●") + StyleLegend.Render(" echo"),
		StyleValue.Render("/") + StyleLegend.Render(" beam"),
		StyleRing.Render("○") + StyleLegend.Render(fmt.Sprintf(" rings every %.0f%s", maxRange/4, unit)),
	}
	return truncate(" "+strings.Join(parts, "   "), width)
}
