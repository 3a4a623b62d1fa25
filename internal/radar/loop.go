package radar

import "sync"

// LoopState is the render loop's run state.
type LoopState int

const (
	Stopped LoopState = iota
	Running
)

func (s LoopState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// FrameToken identifies the frame chain a scheduled frame belongs to.
type FrameToken struct {
	gen uint64
}

// Loop tracks whether frames should be drawn. The host schedules frames
// itself (one per display refresh) and asks Accept before drawing each
// one, so a frame that fires after Stop, or one left over from a chain
// that was stopped and restarted, is dropped.
type Loop struct {
	mu    sync.Mutex
	state LoopState
	gen   uint64
}

// Start moves the loop to Running and returns the token for the first
// frame. Calling Start while running is a no-op and returns false.
func (l *Loop) Start() (FrameToken, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Running {
		return FrameToken{}, false
	}
	l.state = Running
	l.gen++
	return FrameToken{gen: l.gen}, true
}

// Stop moves the loop to Stopped. Pending frames become no-ops.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.state = Stopped
	l.mu.Unlock()
}

// Accept reports whether the frame for tok should be drawn and the next
// one scheduled.
func (l *Loop) Accept(tok FrameToken) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == Running && tok.gen == l.gen
}

// State returns the current run state.
func (l *Loop) State() LoopState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
