// Package source produces rangefinder samples for the radar: a serial line
// reader for real hardware and a simulator that sweeps virtual obstacles.
package source

import "context"

// Sample is one (angle, distance) reading from a rangefinder.
type Sample struct {
	Angle    int
	Distance float64
}

// Source pushes samples to a single registered callback.
type Source interface {
	// OnSample registers the callback; a later call replaces it.
	OnSample(fn func(Sample))
	Start(ctx context.Context) error
	Stop()
}

var (
	_ Source = (*Serial)(nil)
	_ Source = (*Simulator)(nil)
)
