package radar

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"sweep-radar.klederson.com/internal/timeutil"
)

var (
	// ErrNoSurface is returned when a frame is requested against a surface
	// or geometry that cannot be drawn on, typically mid-resize.
	ErrNoSurface = errors.New("surface not drawable")

	// ErrFrameFailed is returned when drawing a frame panicked.
	ErrFrameFailed = errors.New("frame failed")
)

// Config is the construction-time configuration of an Engine.
type Config struct {
	MaxRange float64
	FadeTime time.Duration
	Geometry GeometryProvider
	Clock    timeutil.Clock // Defaults to the real clock
	Style    Style
}

// Stats counts render outcomes since the engine was created.
type Stats struct {
	Frames        uint64
	SkippedFrames uint64
	SkippedDraws  uint64
	Evicted       uint64
}

// Engine owns the detection buffer and draws it onto a Surface through the
// polar projection.
type Engine struct {
	buf   *Buffer
	geom  GeometryProvider
	clock timeutil.Clock
	style Style
	loop  Loop

	mu    sync.Mutex
	stats Stats
}

// NewEngine creates an engine. The render loop starts stopped.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Geometry == nil {
		return nil, errors.New("engine requires a geometry provider")
	}
	buf, err := NewBuffer(cfg.MaxRange, cfg.FadeTime)
	if err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Engine{
		buf:   buf,
		geom:  cfg.Geometry,
		clock: clock,
		style: cfg.Style,
	}, nil
}

// AddDetection ingests a sample at the current time.
func (e *Engine) AddDetection(angle int, distance float64) bool {
	return e.buf.Insert(angle, distance, e.clock.Now())
}

// SetMaxRange changes the display scale and admission ceiling.
func (e *Engine) SetMaxRange(r float64) error {
	return e.buf.SetMaxRange(r)
}

// SetFadeTime changes how long detections stay visible.
func (e *Engine) SetFadeTime(d time.Duration) error {
	return e.buf.SetFadeDuration(d)
}

// MaxRange returns the current display scale.
func (e *Engine) MaxRange() float64 { return e.buf.MaxRange() }

// FadeTime returns the current fade window.
func (e *Engine) FadeTime() time.Duration { return e.buf.FadeDuration() }

// SweepAngle returns the angle the beam is drawn at.
func (e *Engine) SweepAngle() int { return e.buf.SweepAngle() }

// Live returns the currently visible detections.
func (e *Engine) Live() []Detection { return e.buf.Snapshot(e.clock.Now()) }

// Start starts the render loop; see Loop.Start.
func (e *Engine) Start() (FrameToken, bool) { return e.loop.Start() }

// Stop stops the render loop.
func (e *Engine) Stop() { e.loop.Stop() }

// Running reports whether the render loop is running.
func (e *Engine) Running() bool { return e.loop.State() == Running }

// Accept reports whether a scheduled frame should be drawn.
func (e *Engine) Accept(tok FrameToken) bool { return e.loop.Accept(tok) }

// Stats returns a copy of the render counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// DrawFrame evicts expired detections and draws a full frame onto s.
// It never panics: an undrawable surface returns ErrNoSurface, and a
// failure inside the frame is recovered and returned as ErrFrameFailed.
func (e *Engine) DrawFrame(s Surface) (err error) {
	w, h := s.Size()
	g := e.geom.Geometry()
	if !(w > 0 && h > 0) || !finite(w) || !finite(h) || !g.Valid() {
		e.count(func(st *Stats) { st.SkippedFrames++ })
		return ErrNoSurface
	}

	now := e.clock.Now()
	evicted := e.buf.EvictExpired(now)
	f := frame{
		surface:    s,
		geom:       g,
		style:      e.style,
		maxRange:   e.buf.MaxRange(),
		sweepAngle: e.buf.SweepAngle(),
		detections: e.buf.Snapshot(now),
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame recovered from panic: %v", r)
			e.count(func(st *Stats) { st.SkippedFrames++ })
			err = fmt.Errorf("%w: %v", ErrFrameFailed, r)
		}
	}()

	skipped := f.render()
	e.count(func(st *Stats) {
		st.Frames++
		st.SkippedDraws += uint64(skipped)
		st.Evicted += uint64(evicted)
	})
	return nil
}

func (e *Engine) count(fn func(*Stats)) {
	e.mu.Lock()
	fn(&e.stats)
	e.mu.Unlock()
}
