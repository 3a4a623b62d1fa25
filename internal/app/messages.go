package app

import (
	"time"

	"sweep-radar.klederson.com/internal/radar"
	"sweep-radar.klederson.com/internal/source"
)

// FrameMsg triggers drawing one radar frame. Frames carrying a token the
// render loop no longer accepts are dropped.
type FrameMsg struct {
	Token radar.FrameToken
	At    time.Time
}

// SampleMsg carries a reading from the active source.
type SampleMsg source.Sample

// StatusMsg reports a serial connect or disconnect.
type StatusMsg struct {
	Connected bool
}

// ScanErrorMsg reports source errors.
type ScanErrorMsg struct {
	Err error
}
