package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweep-radar.klederson.com/internal/config"
	"sweep-radar.klederson.com/internal/radar"
	"sweep-radar.klederson.com/internal/ui"
)

func newModel(t *testing.T, mutate func(*config.Settings)) AppModel {
	t.Helper()
	s := config.Defaults()
	s.Port = "/dev/sweep-radar-test-missing"
	if mutate != nil {
		mutate(&s)
	}
	m, err := New(s)
	require.NoError(t, err)
	t.Cleanup(m.StopSources)
	return m
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, mutate func(*config.Settings)) AppModel {
	t.Helper()
	m, _ := update(newModel(t, mutate), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	s := config.Defaults()
	s.MaxRange = 0
	_, err := New(s)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestView_BeforeSize(t *testing.T) {
	m := newModel(t, nil)
	assert.Contains(t, m.View(), "Initializing")
	assert.NotNil(t, m.Init())
}

func TestWindowSize_ResizesSurface(t *testing.T) {
	m := sized(t, nil)

	cols, rows := m.shared.cells.Dimensions()
	wantCols, wantRows := ui.RadarInner(80, 38)
	assert.Equal(t, wantCols, cols)
	assert.Equal(t, wantRows, rows)
	assert.True(t, m.shared.viewport.Geometry().Valid())

	view := m.View()
	assert.Equal(t, 40, lipgloss.Height(view))
	assert.Equal(t, 120, lipgloss.Width(view))
}

func TestFrame_DrawsAndSchedulesNext(t *testing.T) {
	m := sized(t, nil)
	before := m.shared.engine.Stats().Frames

	m, cmd := update(m, FrameMsg{Token: m.token, At: time.Now()})
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.shared.engine.Stats().Frames)
	assert.NotEmpty(t, m.radarView)

	_, cmd = update(m, FrameMsg{Token: radar.FrameToken{}, At: time.Now()})
	assert.Nil(t, cmd, "a token the loop never issued is dropped")
}

func TestSpace_PausesAndResumes(t *testing.T) {
	m := sized(t, nil)
	old := m.token

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Nil(t, cmd)
	assert.False(t, m.shared.engine.Running())
	_, cmd = update(m, FrameMsg{Token: old, At: time.Now()})
	assert.Nil(t, cmd, "frames after pause are no-ops")

	frames := m.shared.engine.Stats().Frames
	m, _ = update(m, key("+"))
	m, _ = update(m, key("]"))
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, frames, m.shared.engine.Stats().Frames, "nothing is drawn while paused")
	assert.Equal(t, 450.0, m.shared.engine.MaxRange(), "settings still apply while paused")
	cols, rows := m.shared.cells.Dimensions()
	assert.Len(t, strings.Split(m.radarView, "\n"), rows)
	assert.Equal(t, cols, lipgloss.Width(m.radarView))

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.NotNil(t, cmd)
	assert.True(t, m.shared.engine.Running())
	assert.NotEqual(t, old, m.token)

	_, cmd = update(m, FrameMsg{Token: old, At: time.Now()})
	assert.Nil(t, cmd, "the pre-pause chain does not double up")
	_, cmd = update(m, FrameMsg{Token: m.token, At: time.Now()})
	assert.NotNil(t, cmd)
}

func TestSample_UpdatesReadout(t *testing.T) {
	m := sized(t, nil)

	m, _ = update(m, SampleMsg{Angle: 90, Distance: 120})
	m, _ = update(m, SampleMsg{Angle: 91, Distance: 900})
	m, _ = update(m, FrameMsg{Token: m.token, At: time.Now()})

	require.Len(t, m.live, 1, "out of range sample is not drawn")
	assert.Equal(t, 90, m.live[0].Angle)
	last, ok := m.shared.history.Last()
	require.True(t, ok)
	assert.Equal(t, 91, last.Angle)
	assert.Equal(t, []float64{120, 900}, m.shared.history.Distances())

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "91°")
	assert.Contains(t, view, "900 cm")
	assert.Contains(t, view, "CONTACTS [1]")
}

func TestRangeKeys(t *testing.T) {
	m := sized(t, nil)

	m, _ = update(m, key("+"))
	assert.Equal(t, 450.0, m.shared.engine.MaxRange())
	m, _ = update(m, key("-"))
	m, _ = update(m, key("-"))
	assert.Equal(t, 350.0, m.shared.engine.MaxRange())
	assert.Empty(t, m.flash)

	m = sized(t, func(s *config.Settings) { s.MaxRange = 50 })
	m, _ = update(m, key("-"))
	assert.Equal(t, 50.0, m.shared.engine.MaxRange(), "invalid range is not applied")
	assert.Contains(t, m.flash, "range")
	assert.Contains(t, ansi.Strip(m.View()), m.flash)
}

func TestFadeKeys(t *testing.T) {
	m := sized(t, nil)

	m, _ = update(m, key("]"))
	assert.Equal(t, 3500*time.Millisecond, m.shared.engine.FadeTime())
	m, _ = update(m, key("["))
	assert.Equal(t, 3000*time.Millisecond, m.shared.engine.FadeTime())

	m = sized(t, func(s *config.Settings) { s.FadeTime = 500 * time.Millisecond })
	m, _ = update(m, key("["))
	assert.Equal(t, 500*time.Millisecond, m.shared.engine.FadeTime())
	assert.NotEmpty(t, m.flash)
}

func TestSimulationToggle(t *testing.T) {
	m := sized(t, nil)
	assert.Equal(t, ui.ModeDisconnected, m.mode())

	m, _ = update(m, key("s"))
	assert.True(t, m.shared.sim.Running())
	assert.Equal(t, ui.ModeSimulating, m.mode())
	assert.Contains(t, ansi.Strip(m.View()), "SIMULATING")

	m, cmd := update(m, key("c"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.flash, "stop the simulation")

	m, _ = update(m, key("r"))
	m, _ = update(m, key("s"))
	assert.False(t, m.shared.sim.Running())
	assert.Equal(t, ui.ModeDisconnected, m.mode())
}

func TestConnectFailureFlashes(t *testing.T) {
	m := sized(t, nil)

	m, cmd := update(m, key("c"))
	require.NotNil(t, cmd)
	msg := cmd()
	errMsg, ok := msg.(ScanErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, errMsg.Err.Error(), "failed to open serial port")

	m, _ = update(m, errMsg)
	assert.Contains(t, m.flash, "failed to open serial port")

	_, cmd = update(m, key("d"))
	assert.Nil(t, cmd, "nothing to disconnect")
}

func TestStatusAndFlashExpiry(t *testing.T) {
	m := sized(t, nil)

	m, _ = update(m, StatusMsg{Connected: false})
	assert.Equal(t, "serial port disconnected", m.flash)

	m, _ = update(m, FrameMsg{Token: m.token, At: time.Now()})
	assert.NotEmpty(t, m.flash)
	m, _ = update(m, FrameMsg{Token: m.token, At: time.Now().Add(2 * flashFor)})
	assert.Empty(t, m.flash)
}

func TestQuit(t *testing.T) {
	m := sized(t, nil)
	m, _ = update(m, key("s"))

	m, cmd := update(m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.shared.engine.Running())
	assert.False(t, m.shared.sim.Running())
}
