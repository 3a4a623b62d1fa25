package radar

import (
	"fmt"
	"log"
	"math"
)

var (
	ringFractions = []float64{0.25, 0.5, 0.75, 1.0}
	guideAngles   = []int{0, 30, 60, 90, 120, 150, 180}
)

// beam gradient stops along the radius: (position, alpha)
var beamStops = [][2]float64{{0, 0.5}, {0.7, 0.2}, {1, 0}}

const arcSteps = 8

// frame is everything one render pass needs.
type frame struct {
	surface    Surface
	geom       DisplayGeometry
	style      Style
	maxRange   float64
	sweepAngle int
	detections []Detection
}

// render draws one complete frame and returns how many detections failed
// to draw.
func (f frame) render() int {
	w, h := f.surface.Size()
	f.surface.Clear(f.style.Background)
	f.drawGrid(w, h)
	f.drawRangeRings()
	f.drawGuides()
	skipped := f.drawDetections()
	f.drawBeam()
	f.drawOrigin()
	return skipped
}

func (f frame) drawGrid(w, h float64) {
	step := f.style.GridSpacing
	if step <= 0 {
		return
	}
	for x := 0.0; x < w; x += step {
		f.surface.Line(Point{x, 0}, Point{x, h}, f.style.Grid, f.style.LineWidth)
	}
	for y := 0.0; y < h; y += step {
		f.surface.Line(Point{0, y}, Point{w, y}, f.style.Grid, f.style.LineWidth)
	}
}

func (f frame) drawRangeRings() {
	c := f.geom.Center()
	for _, frac := range ringFractions {
		r := f.geom.Radius * frac
		f.surface.Circle(c, r, f.style.Ring, f.style.LineWidth)

		label := fmt.Sprintf("%d%s", int(math.Round(f.maxRange*frac)), f.style.Unit)
		f.surface.Text(Point{c.X, c.Y - r - f.style.RingLabelOffset}, label, f.style.RingLabel)
	}
}

func (f frame) drawGuides() {
	c := f.geom.Center()
	labelGeom := f.geom
	labelGeom.Radius += f.style.LabelOffset

	for _, angle := range guideAngles {
		end := Project(angle, 1, 1, f.geom)
		f.surface.Line(c, end, f.style.Guide, f.style.LineWidth)
		f.surface.Text(Project(angle, 1, 1, labelGeom), fmt.Sprintf("%d°", angle), f.style.GuideLabel)
	}
}

func (f frame) drawDetections() int {
	skipped := 0
	for _, d := range f.detections {
		if err := f.drawDetection(d); err != nil {
			log.Printf("skipping detection at %d°/%.0f: %v", d.Angle, d.Distance, err)
			skipped++
		}
	}
	return skipped
}

// drawDetection draws one fading echo: a soft glow and a solid core, both
// scaled by the detection's alpha. A panic from the surface is contained
// here so one bad echo cannot take down the frame.
func (f frame) drawDetection(d Detection) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw panicked: %v", r)
		}
	}()

	p := Project(d.Angle, d.Distance, f.maxRange, f.geom)
	if !finite(p.X) || !finite(p.Y) {
		return fmt.Errorf("projection is not finite: %+v", p)
	}

	st := f.style
	f.surface.FillCircle(p, st.GlowRadius, WithAlpha(st.Echo, d.Alpha*0.25))
	f.surface.FillCircle(p, st.GlowRadius/2, WithAlpha(st.Echo, d.Alpha*0.5))
	f.surface.FillCircle(p, st.PointRadius, WithAlpha(st.EchoCore, d.Alpha))
	return nil
}

// drawBeam fills a wedge trailing the sweep angle. The wedge is split into
// radial bands so its brightness falls off toward the rim.
func (f frame) drawBeam() {
	st := f.style
	lead := AngleRadians(float64(f.sweepAngle))
	trail := lead - st.BeamWidth

	bands := st.BeamBands
	if bands < 1 {
		bands = 1
	}
	for i := 0; i < bands; i++ {
		r0 := float64(i) / float64(bands)
		r1 := float64(i+1) / float64(bands)
		a := beamAlpha((r0 + r1) / 2)
		if a <= 0 {
			continue
		}
		f.surface.FillPolygon(f.sector(trail, lead, r0, r1), WithAlpha(st.Beam, a))
	}

	edge := ProjectRadians(lead, 1, 1, f.geom)
	f.surface.Line(f.geom.Center(), edge, st.BeamEdge, st.EdgeWidth)
}

// sector returns the outline of the annular sector between radius
// fractions r0 and r1, from angle a0 to a1.
func (f frame) sector(a0, a1, r0, r1 float64) []Point {
	pts := make([]Point, 0, 2*(arcSteps+1))
	for i := 0; i <= arcSteps; i++ {
		a := a0 + (a1-a0)*float64(i)/arcSteps
		pts = append(pts, ProjectRadians(a, r1, 1, f.geom))
	}
	if r0 <= 0 {
		return append(pts, f.geom.Center())
	}
	for i := arcSteps; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/arcSteps
		pts = append(pts, ProjectRadians(a, r0, 1, f.geom))
	}
	return pts
}

// beamAlpha interpolates the beam gradient at radius fraction t.
func beamAlpha(t float64) float64 {
	for i := 1; i < len(beamStops); i++ {
		p0, p1 := beamStops[i-1], beamStops[i]
		if t <= p1[0] {
			u := (t - p0[0]) / (p1[0] - p0[0])
			return p0[1] + (p1[1]-p0[1])*u
		}
	}
	return 0
}

func (f frame) drawOrigin() {
	c := f.geom.Center()
	f.surface.FillCircle(c, f.style.OriginGlow, WithAlpha(f.style.Origin, 0.4))
	f.surface.FillCircle(c, f.style.OriginRadius, f.style.Origin)
}
