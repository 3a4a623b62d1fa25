package config

import "time"

const (
	// Detection buffer
	MaxRange      = 400.0                   // Display scale ceiling in centimeters
	FadeTime      = 3000 * time.Millisecond // How long a detection stays visible
	MaxDetections = 4096                    // Hard cap on buffered detections
	RangeUnit     = "cm"

	// Radar display
	AspectRatio    = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	TargetFPS      = 30  // Target frames per second
	BeamWidthRad   = 0.2 // Angular width of the trailing beam wedge
	BeamBands      = 6   // Gradient steps used to shade the beam wedge
	RangeStep      = 50.0
	FadeStep       = 500 * time.Millisecond
	HistoryLen     = 120 // Distance readings kept for the sparkline
	SnapshotSize   = 700 // Default PNG snapshot edge in pixels
	SnapshotMargin = 40.0
	TerminalMargin = 4.0 // Room around the half disc for labels, in cell units

	// Serial transport (Arduino defaults)
	DefaultPort = "/dev/ttyUSB0"
	BaudRate    = 9600

	// Simulator
	SimInterval     = 50 * time.Millisecond // Time between simulated steps
	SimAngleStep    = 1                     // Degrees per step
	SimNoEcho       = 400.0                 // Distance reported when nothing is hit
	SimSpuriousProb = 0.05                  // Chance of a phantom echo when nothing is hit
	SimObstacleMin  = 5
	SimObstacleMax  = 9

	// App
	AppName    = "SWEEP-RADAR"
	AppVersion = "1.0"
	EnvPrefix  = "SWEEP_RADAR"
	ConfigName = "sweep-radar"
)
