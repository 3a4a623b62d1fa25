package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweep-radar.klederson.com/internal/radar"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRenderReadout_FixedHeight(t *testing.T) {
	for _, h := range []int{6, 20, 40} {
		out := RenderReadout(Readout{Unit: "cm", MaxRange: 400}, 40, h)
		assert.Len(t, plainLines(out), h, "height %d", h)
	}
}

func TestRenderReadout_Fields(t *testing.T) {
	out := ansi.Strip(RenderReadout(Readout{
		Angle:     90,
		Distance:  245,
		HasSample: true,
		MaxRange:  400,
		Fade:      3 * time.Second,
		Unit:      "cm",
		Mode:      ModeSimulating,
	}, 40, 30))

	assert.Contains(t, out, "90°")
	assert.Contains(t, out, "245 cm")
	assert.Contains(t, out, "400 cm")
	assert.Contains(t, out, "3.0s")
	assert.Contains(t, out, "SIMULATING")
	assert.Contains(t, out, "No echoes")
}

func TestRenderReadout_NoDistance(t *testing.T) {
	out := ansi.Strip(RenderReadout(Readout{Unit: "cm", MaxRange: 400}, 40, 30))
	assert.Contains(t, out, "--°")
	assert.Contains(t, out, "-- cm")

	out = ansi.Strip(RenderReadout(Readout{Angle: 45, HasSample: true, Unit: "cm", MaxRange: 400}, 40, 30))
	assert.Contains(t, out, "45°")
	assert.Contains(t, out, "-- cm", "a zero distance shows as no reading")
}

func TestRenderReadout_ContactsNewestFirst(t *testing.T) {
	out := ansi.Strip(RenderReadout(Readout{
		Unit:     "cm",
		MaxRange: 400,
		Contacts: []radar.Detection{
			{Angle: 10, Distance: 100, Alpha: 0.5},
			{Angle: 20, Distance: 200, Alpha: 1},
		},
	}, 40, 30))

	assert.Contains(t, out, "CONTACTS [2]")
	older := strings.Index(out, " 10° ")
	newer := strings.Index(out, " 20° ")
	require.NotEqual(t, -1, older)
	require.NotEqual(t, -1, newer)
	assert.Less(t, newer, older)
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "_.-~^", renderSparkline([]float64{0, 100, 200, 300, 400}, 10))
	assert.Equal(t, "_-^", renderSparkline([]float64{0, 100, 200, 300, 400}, 3))
	assert.Equal(t, "___", renderSparkline([]float64{7, 7, 7}, 10))
	assert.Equal(t, "", renderSparkline(nil, 10))
	assert.Equal(t, "", renderSparkline([]float64{1}, 0))
}

func TestRenderFadeBar(t *testing.T) {
	assert.Equal(t, "[||--]", ansi.Strip(renderFadeBar(0.5, 4)))
	assert.Equal(t, "[||||]", ansi.Strip(renderFadeBar(1.5, 4)))
	assert.Equal(t, "[----]", ansi.Strip(renderFadeBar(-1, 4)))
}

func TestRenderMenuBar_FitsWidth(t *testing.T) {
	for _, w := range []int{80, 160} {
		lines := plainLines(RenderMenuBar(w, ModeConnected, true))
		require.Len(t, lines, 1, "width %d", w)
		assert.Equal(t, w, ansi.StringWidth(lines[0]), "width %d", w)
		assert.Contains(t, lines[0], "CONNECTED")
		assert.Contains(t, lines[0], "LIVE")
	}

	narrow := ansi.Strip(RenderMenuBar(80, ModeDisconnected, false))
	assert.NotContains(t, narrow, "[Q]uit")
	assert.Contains(t, narrow, "PAUSED")
	assert.Contains(t, ansi.Strip(RenderMenuBar(160, ModeDisconnected, false)), "[Q]uit")
}

func TestRenderStatusBar(t *testing.T) {
	st := Status{Running: true, Contacts: 3, Sweep: 90, MaxRange: 400, Unit: "cm", Frames: 12}
	out := ansi.Strip(RenderStatusBar(100, st))
	assert.Contains(t, out, "[LIVE]")
	assert.Contains(t, out, "Contacts: 3")
	assert.Contains(t, out, "Sweep: 90°")
	assert.Contains(t, out, "Range: 0-400cm")
	assert.Equal(t, 100, ansi.StringWidth(out))

	st.Running = false
	st.Flash = "range must be positive"
	out = ansi.Strip(RenderStatusBar(100, st))
	assert.Contains(t, out, "[PAUSED]")
	assert.Contains(t, out, "range must be positive")
	assert.NotContains(t, out, "Contacts")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "DISCONNECTED", ModeDisconnected.String())
	assert.Equal(t, "CONNECTED", ModeConnected.String())
	assert.Equal(t, "SIMULATING", ModeSimulating.String())
	assert.Contains(t, ansi.Strip(ModeSimulating.Render()), "SIMULATING")
}

func TestRenderLegend(t *testing.T) {
	out := ansi.Strip(RenderLegend(80, 400, "cm"))
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "rings every 100cm")
	assert.LessOrEqual(t, ansi.StringWidth(RenderLegend(10, 400, "cm")), 10)
}
