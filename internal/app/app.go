package app

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sweep-radar.klederson.com/internal/canvas"
	"sweep-radar.klederson.com/internal/config"
	"sweep-radar.klederson.com/internal/radar"
	"sweep-radar.klederson.com/internal/source"
	"sweep-radar.klederson.com/internal/ui"
)

const flashFor = 3 * time.Second

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	engine   *radar.Engine
	viewport *radar.Viewport
	cells    *canvas.Cells
	history  *SampleLog
	sim      *source.Simulator
	serial   *source.Serial

	ctx    context.Context
	cancel context.CancelFunc
}

// AppModel is the root Bubble Tea model for the sweep radar.
type AppModel struct {
	width  int
	height int

	settings config.Settings
	token    radar.FrameToken

	flash      string
	flashUntil time.Time

	shared *shared

	// Cached per frame
	radarView string
	live      []radar.Detection
}

// New creates the model with its render loop running. Sources are started
// separately by StartSources.
func New(s config.Settings) (AppModel, error) {
	viewport := radar.NewViewport(config.TerminalMargin)
	engine, err := radar.NewEngine(radar.Config{
		MaxRange: s.MaxRange,
		FadeTime: s.FadeTime,
		Geometry: viewport,
		Style:    radar.TerminalStyle(),
	})
	if err != nil {
		return AppModel{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sh := &shared{
		engine:   engine,
		viewport: viewport,
		cells:    canvas.NewCells(0, 0, config.AspectRatio),
		history:  NewSampleLog(config.HistoryLen),
		sim:      source.NewSimulator(nil),
		serial:   source.NewSerial(s.Port, source.PortOptions{BaudRate: s.Baud}),
		ctx:      ctx,
		cancel:   cancel,
	}
	tok, _ := engine.Start()

	return AppModel{
		settings: s,
		token:    tok,
		shared:   sh,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.frameCmd(m.token)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.draw()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		if !m.shared.engine.Accept(msg.Token) {
			return m, nil
		}
		if m.flash != "" && msg.At.After(m.flashUntil) {
			m.flash = ""
		}
		m.draw()
		return m, m.frameCmd(msg.Token)

	case SampleMsg:
		m.shared.engine.AddDetection(msg.Angle, msg.Distance)
		m.shared.history.Add(source.Sample(msg))
		return m, nil

	case StatusMsg:
		if !msg.Connected {
			m.setFlash("serial port disconnected")
		}
		return m, nil

	case ScanErrorMsg:
		log.Printf("source error: %v", msg.Err)
		m.setFlash(msg.Err.Error())
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sh := m.shared
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopSources()
		sh.engine.Stop()
		return m, tea.Quit

	case " ", "space":
		if sh.engine.Running() {
			sh.engine.Stop()
			return m, nil
		}
		tok, _ := sh.engine.Start()
		m.token = tok
		return m, m.frameCmd(tok)

	case "s", "S":
		switch {
		case sh.sim.Running():
			sh.sim.Stop()
		case sh.serial.Connected():
			m.setFlash("disconnect the serial port before simulating")
		default:
			if err := sh.sim.Start(sh.ctx); err != nil {
				m.setFlash(err.Error())
			}
		}

	case "c", "C":
		switch {
		case sh.sim.Running():
			m.setFlash("stop the simulation before connecting")
		case !sh.serial.Connected():
			return m, m.connectCmd()
		}

	case "d", "D":
		if sh.serial.Connected() {
			return m, m.disconnectCmd()
		}

	case "+", "=":
		m.applyRange(sh.engine.MaxRange() + config.RangeStep)

	case "-", "_":
		m.applyRange(sh.engine.MaxRange() - config.RangeStep)

	case "]":
		m.applyFade(sh.engine.FadeTime() + config.FadeStep)

	case "[":
		m.applyFade(sh.engine.FadeTime() - config.FadeStep)

	case "r", "R":
		sh.sim.RegenerateObstacles()
	}

	return m, nil
}

func (m *AppModel) applyRange(r float64) {
	if err := m.shared.engine.SetMaxRange(r); err != nil {
		m.setFlash(err.Error())
		return
	}
	m.draw()
}

func (m *AppModel) applyFade(d time.Duration) {
	if err := m.shared.engine.SetFadeTime(d); err != nil {
		m.setFlash(err.Error())
		return
	}
	m.draw()
}

func (m *AppModel) setFlash(s string) {
	m.flash = s
	m.flashUntil = time.Now().Add(flashFor)
}

// mode reports where samples are coming from.
func (m AppModel) mode() ui.Mode {
	switch {
	case m.shared.sim.Running():
		return ui.ModeSimulating
	case m.shared.serial.Connected():
		return ui.ModeConnected
	default:
		return ui.ModeDisconnected
	}
}

// layout splits the window into the radar and readout panels.
func (m AppModel) layout() (radarW, readW, bodyH int) {
	bodyH = m.height - 2 // menu and status bars
	if bodyH < 6 {
		bodyH = 6
	}
	radarW = m.width * 2 / 3
	if radarW < 30 {
		radarW = 30
	}
	readW = m.width - radarW
	if readW < 24 {
		readW = 24
		radarW = m.width - readW
	}
	return radarW, readW, bodyH
}

func (m *AppModel) resize() {
	radarW, _, bodyH := m.layout()
	cols, rows := ui.RadarInner(radarW, bodyH)
	m.shared.cells.Resize(cols, rows)
	m.shared.viewport.Resize(m.shared.cells.Size())
}

// draw renders one frame into the cell grid and caches the result. While
// paused the grid is left as it is and only the cached view is refreshed.
func (m *AppModel) draw() {
	sh := m.shared
	if !sh.engine.Running() {
		m.radarView = sh.cells.String()
		return
	}
	if err := sh.engine.DrawFrame(sh.cells); err != nil {
		log.Printf("frame skipped: %v", err)
	}
	m.radarView = sh.cells.String()
	m.live = sh.engine.Live()
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return fmt.Sprintf("Initializing %s...", config.AppName)
	}

	sh := m.shared
	radarW, readW, bodyH := m.layout()
	running := sh.engine.Running()
	mode := m.mode()

	menuBar := ui.RenderMenuBar(m.width, mode, running)

	cols, _ := sh.cells.Dimensions()
	legend := ui.RenderLegend(cols, sh.engine.MaxRange(), config.RangeUnit)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, m.radarView, legend)

	last, hasSample := sh.history.Last()
	readout := ui.RenderReadout(ui.Readout{
		Angle:     last.Angle,
		Distance:  last.Distance,
		HasSample: hasSample,
		MaxRange:  sh.engine.MaxRange(),
		Fade:      sh.engine.FadeTime(),
		Unit:      config.RangeUnit,
		Mode:      mode,
		History:   sh.history.Distances(),
		Contacts:  m.live,
	}, readW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, ui.Status{
		Running:  running,
		Contacts: len(m.live),
		Sweep:    sh.engine.SweepAngle(),
		MaxRange: sh.engine.MaxRange(),
		Unit:     config.RangeUnit,
		Frames:   sh.engine.Stats().Frames,
		Flash:    m.flash,
	})

	return ui.ComposeLayout(menuBar, radarPanel, readout, statusBar)
}

// StartSources wires the sources to p and starts the one the settings ask
// for. Must be called before p.Run().
func (m *AppModel) StartSources(p *tea.Program) error {
	sh := m.shared
	send := func(s source.Sample) { p.Send(SampleMsg(s)) }
	sh.sim.OnSample(send)
	sh.serial.OnSample(send)

	var err error
	if m.settings.Demo {
		err = sh.sim.Start(sh.ctx)
	} else {
		err = sh.serial.Start(sh.ctx)
	}

	// Registered after the first connect: p.Send blocks until p.Run starts.
	sh.serial.OnStatusChange(func(connected bool) {
		p.Send(StatusMsg{Connected: connected})
	})
	return err
}

// StopSources halts both sources. Callbacks are detached first so a
// disconnect never blocks on the program.
func (m *AppModel) StopSources() {
	sh := m.shared
	sh.serial.OnStatusChange(nil)
	sh.serial.OnSample(nil)
	sh.sim.OnSample(nil)
	sh.serial.Stop()
	sh.sim.Stop()
	sh.cancel()
}

func (m AppModel) frameCmd(tok radar.FrameToken) tea.Cmd {
	return tea.Tick(m.settings.FrameInterval(), func(t time.Time) tea.Msg {
		return FrameMsg{Token: tok, At: t}
	})
}

func (m AppModel) connectCmd() tea.Cmd {
	sh := m.shared
	return func() tea.Msg {
		if err := sh.serial.Start(sh.ctx); err != nil {
			return ScanErrorMsg{Err: err}
		}
		return nil
	}
}

func (m AppModel) disconnectCmd() tea.Cmd {
	sh := m.shared
	return func() tea.Msg {
		sh.serial.Stop()
		return nil
	}
}
