package radar

import (
	"math"
	"sync"
)

// Point is a position on a drawing surface. Y grows downward.
type Point struct {
	X, Y float64
}

// DisplayGeometry places the radar on a surface.
type DisplayGeometry struct {
	CenterX float64
	CenterY float64
	Radius  float64
}

// Valid reports whether the geometry can be drawn.
func (g DisplayGeometry) Valid() bool {
	return finite(g.CenterX) && finite(g.CenterY) && finite(g.Radius) && g.Radius > 0
}

// Center returns the origin of the sweep.
func (g DisplayGeometry) Center() Point {
	return Point{g.CenterX, g.CenterY}
}

// GeometryProvider supplies the current display geometry.
type GeometryProvider interface {
	Geometry() DisplayGeometry
}

// Project maps an (angle, distance) sample to surface coordinates.
// 0° is the left horizon, 90° straight up, 180° the right horizon.
// Distances beyond maxRange are pinned to the outer ring.
func Project(angle int, distance, maxRange float64, g DisplayGeometry) Point {
	return ProjectRadians(AngleRadians(float64(angle)), distance, maxRange, g)
}

// ProjectRadians is Project for an already rotated angle in radians.
func ProjectRadians(rad, distance, maxRange float64, g DisplayGeometry) Point {
	ratio := math.Min(distance, maxRange) / maxRange
	r := g.Radius * ratio
	return Point{
		X: g.CenterX + r*math.Cos(rad),
		Y: g.CenterY + r*math.Sin(rad),
	}
}

// AngleRadians rotates a sweep angle in degrees into surface radians.
// Surface y grows downward, so -π/2 points up.
func AngleRadians(deg float64) float64 {
	return (deg - 180) * math.Pi / 180
}

// FitGeometry places the half disc inside a w×h surface with the origin at
// the bottom centre, leaving margin on every side for labels.
func FitGeometry(w, h, margin float64) DisplayGeometry {
	radius := math.Min(w/2-margin, h-2*margin)
	if radius < 1 {
		radius = 1
	}
	return DisplayGeometry{
		CenterX: w / 2,
		CenterY: h - margin,
		Radius:  radius,
	}
}

// Viewport is a GeometryProvider recomputed whenever the surface resizes.
type Viewport struct {
	mu     sync.RWMutex
	margin float64
	geom   DisplayGeometry
}

// NewViewport creates a viewport; Resize must be called before drawing.
func NewViewport(margin float64) *Viewport {
	return &Viewport{margin: margin}
}

// Resize recomputes the geometry for a w×h surface.
func (v *Viewport) Resize(w, h float64) {
	g := DisplayGeometry{}
	if w > 0 && h > 0 {
		g = FitGeometry(w, h, v.margin)
	}
	v.mu.Lock()
	v.geom = g
	v.mu.Unlock()
}

// Geometry returns the geometry for the last Resize.
func (v *Viewport) Geometry() DisplayGeometry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.geom
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
