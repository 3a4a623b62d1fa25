package radar

import (
	"image/color"

	"sweep-radar.klederson.com/internal/config"
)

// Style holds the palette and sizes of the radar display.
type Style struct {
	Background color.NRGBA
	Grid       color.NRGBA
	Ring       color.NRGBA
	RingLabel  color.NRGBA
	Guide      color.NRGBA
	GuideLabel color.NRGBA
	Echo       color.NRGBA // Detection glow
	EchoCore   color.NRGBA // Detection inner point
	Beam       color.NRGBA
	BeamEdge   color.NRGBA
	Origin     color.NRGBA

	GridSpacing     float64
	LabelOffset     float64 // Angle labels sit this far outside the outer ring
	RingLabelOffset float64 // Range labels sit this far above their ring
	GlowRadius      float64
	PointRadius     float64
	OriginGlow      float64
	OriginRadius    float64
	LineWidth       float64
	EdgeWidth       float64
	BeamWidth       float64 // Radians
	BeamBands       int
	Unit            string
}

var (
	phosphor = color.NRGBA{0x00, 0xFF, 0x88, 0xFF}
	echoRed  = color.NRGBA{0xFF, 0x3B, 0x5C, 0xFF}
	white    = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// DefaultStyle is the pixel look used for image output.
func DefaultStyle() Style {
	return Style{
		Background: color.NRGBA{0x0A, 0x0E, 0x1A, 0xFF},
		Grid:       WithAlpha(phosphor, 0.05),
		Ring:       WithAlpha(phosphor, 0.3),
		RingLabel:  WithAlpha(phosphor, 0.6),
		Guide:      WithAlpha(phosphor, 0.2),
		GuideLabel: WithAlpha(phosphor, 0.8),
		Echo:       echoRed,
		EchoCore:   white,
		Beam:       phosphor,
		BeamEdge:   WithAlpha(phosphor, 0.8),
		Origin:     phosphor,

		GridSpacing:     20,
		LabelOffset:     20,
		RingLabelOffset: 5,
		GlowRadius:      10,
		PointRadius:     3,
		OriginGlow:      15,
		OriginRadius:    5,
		LineWidth:       1,
		EdgeWidth:       2,
		BeamWidth:       config.BeamWidthRad,
		BeamBands:       config.BeamBands,
		Unit:            config.RangeUnit,
	}
}

// TerminalStyle is tuned for character cells, where one unit is one column
// and faint strokes would vanish entirely.
func TerminalStyle() Style {
	s := DefaultStyle()
	s.Background = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
	s.Grid = WithAlpha(phosphor, 0.12)
	s.Ring = WithAlpha(phosphor, 0.45)
	s.Guide = WithAlpha(phosphor, 0.3)
	s.GridSpacing = 8
	s.LabelOffset = 3
	s.RingLabelOffset = 2
	s.GlowRadius = 1.5
	s.PointRadius = 0.5
	s.OriginGlow = 1.5
	s.OriginRadius = 0.5
	return s
}
