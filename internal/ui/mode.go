package ui

// Mode is where samples are coming from.
type Mode int

const (
	ModeDisconnected Mode = iota
	ModeConnected
	ModeSimulating
)

func (m Mode) String() string {
	switch m {
	case ModeConnected:
		return "CONNECTED"
	case ModeSimulating:
		return "SIMULATING"
	default:
		return "DISCONNECTED"
	}
}

// Render returns the mode label in its indicator colour.
func (m Mode) Render() string {
	switch m {
	case ModeConnected:
		return StyleModeConnected.Render("● " + m.String())
	case ModeSimulating:
		return StyleModeSimulating.Render("● " + m.String())
	default:
		return StyleModeDisconnected.Render("○ " + m.String())
	}
}
