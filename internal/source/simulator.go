package source

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"sweep-radar.klederson.com/internal/config"
	"sweep-radar.klederson.com/internal/radar"
)

type obstacle struct {
	angle    int // Centre bearing in degrees
	distance int
	width    int // Half-width in degrees
}

// Simulator sweeps back and forth across the half circle and reports the
// distance to a set of randomly placed virtual obstacles.
type Simulator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	interval  time.Duration
	angle     int
	direction int
	obstacles []obstacle
	onSample  func(Sample)

	running bool
	parent  context.Context
	cancel  context.CancelFunc
}

// NewSimulator creates a simulator. A nil rng seeds one from the clock.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Simulator{
		rng:       rng,
		interval:  config.SimInterval,
		direction: 1,
	}
	s.obstacles = s.generateObstacles()
	return s
}

// OnSample registers the sample callback.
func (s *Simulator) OnSample(fn func(Sample)) {
	s.mu.Lock()
	s.onSample = fn
	s.mu.Unlock()
}

// Start resets the sweep to 0°, places new obstacles and begins stepping
// every scan interval. Starting a running simulator does nothing.
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	s.running = true
	s.angle = radar.MinAngle
	s.direction = 1
	s.obstacles = s.generateObstacles()
	s.parent = ctx
	s.launch()
	return nil
}

// launch starts the ticker goroutine. Callers hold mu.
func (s *Simulator) launch() {
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	go s.loop(ctx, s.interval)
}

func (s *Simulator) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Stop halts the simulator.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.cancel()
	s.cancel = nil
}

// Running reports whether the simulator is stepping.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetScanSpeed changes the time between steps, restarting the ticker if
// the simulator is running.
func (s *Simulator) SetScanSpeed(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: scan interval must be positive, got %v", config.ErrInvalid, d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
	if s.running {
		s.cancel()
		s.launch()
	}
	return nil
}

// RegenerateObstacles replaces the virtual obstacles.
func (s *Simulator) RegenerateObstacles() {
	s.mu.Lock()
	s.obstacles = s.generateObstacles()
	s.mu.Unlock()
}

// Step advances the sweep by one step, reversing at either horizon, and
// emits the reading at the new angle.
func (s *Simulator) Step() Sample {
	s.mu.Lock()
	s.angle += config.SimAngleStep * s.direction
	if s.angle >= radar.MaxAngle {
		s.angle = radar.MaxAngle
		s.direction = -1
	} else if s.angle <= radar.MinAngle {
		s.angle = radar.MinAngle
		s.direction = 1
	}
	sample := Sample{Angle: s.angle, Distance: s.distance(s.angle)}
	fn := s.onSample
	s.mu.Unlock()

	if fn != nil {
		fn(sample)
	}
	return sample
}

// distance returns the echo at angle: the nearest obstacle covering it,
// with ±5 of noise, or the no-echo reading with the odd spurious return.
// Callers hold mu.
func (s *Simulator) distance(angle int) float64 {
	nearest := config.SimNoEcho
	for _, o := range s.obstacles {
		if abs(angle-o.angle) > o.width {
			continue
		}
		noise := (s.rng.Float64() - 0.5) * 10
		d := math.Max(0, float64(o.distance)+noise)
		if d < nearest {
			nearest = d
		}
	}

	if nearest == config.SimNoEcho && s.rng.Float64() < config.SimSpuriousProb {
		nearest = float64(100 + s.rng.Intn(300))
	}
	return math.Round(nearest)
}

// generateObstacles places 5 to 9 obstacles. Callers hold mu.
func (s *Simulator) generateObstacles() []obstacle {
	n := config.SimObstacleMin + s.rng.Intn(config.SimObstacleMax-config.SimObstacleMin+1)
	obs := make([]obstacle, n)
	for i := range obs {
		obs[i] = obstacle{
			angle:    s.rng.Intn(radar.MaxAngle), // 0-179
			distance: 50 + s.rng.Intn(300),       // 50-349
			width:    10 + s.rng.Intn(20),        // 10-29 degrees either side
		}
	}
	return obs
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
