// Package canvas provides radar.Surface implementations: a terminal cell grid
// styled with lipgloss and a raster image backed by gonum/plot's vgimg.
package canvas

import (
	"fmt"
	"image/color"
	"math"
)

// blend composites src over an opaque dst using src's alpha.
func blend(dst, src color.NRGBA) color.NRGBA {
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return clamp(float64(d)*(1-a) + float64(s)*a)
	}
	return color.NRGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 0xFF,
	}
}

// clamp converts a channel value to uint8, rounding and saturating.
func clamp(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xFF
	return c
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
