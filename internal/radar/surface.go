package radar

import "image/color"

// Surface is a drawing target for one frame. Coordinates are surface units
// with Y growing downward; colours are non-premultiplied so alpha carries
// the fade.
type Surface interface {
	Size() (w, h float64)
	Clear(c color.NRGBA)
	Line(a, b Point, c color.NRGBA, width float64)
	Circle(center Point, r float64, c color.NRGBA, width float64)
	FillCircle(center Point, r float64, c color.NRGBA)
	FillPolygon(pts []Point, c color.NRGBA)
	Text(at Point, s string, c color.NRGBA)
}

// WithAlpha returns c with its alpha scaled by a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
