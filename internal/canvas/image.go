package canvas

import (
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"sweep-radar.klederson.com/internal/radar"
)

const (
	imageDPI = 72 // one point per pixel
	fontSize = 12
)

// Image is a raster surface. Surface units are pixels with the origin at
// the top left; vg's origin is bottom left, so y is flipped on the way in.
type Image struct {
	c    *vgimg.Canvas
	w, h float64
	face font.Face
}

var _ radar.Surface = (*Image)(nil)

// NewImage creates a w×h pixel surface.
func NewImage(w, h int) *Image {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w), vg.Length(h)),
		vgimg.UseDPI(imageDPI),
	)
	fnt := plot.DefaultFont
	fnt.Variant = "Sans"
	return &Image{
		c:    c,
		w:    float64(w),
		h:    float64(h),
		face: font.DefaultCache.Lookup(fnt, vg.Points(fontSize)),
	}
}

// Size returns the surface size in pixels.
func (i *Image) Size() (float64, float64) {
	return i.w, i.h
}

func (i *Image) pt(p radar.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(i.h - p.Y)}
}

// Clear fills the whole surface.
func (i *Image) Clear(clr color.NRGBA) {
	i.FillPolygon([]radar.Point{{X: 0, Y: 0}, {X: i.w, Y: 0}, {X: i.w, Y: i.h}, {X: 0, Y: i.h}}, clr)
}

// Line strokes a straight segment.
func (i *Image) Line(a, b radar.Point, clr color.NRGBA, width float64) {
	var p vg.Path
	p.Move(i.pt(a))
	p.Line(i.pt(b))
	i.c.SetLineWidth(vg.Length(width))
	i.c.SetColor(clr)
	i.c.Stroke(p)
}

// Circle strokes a full circle.
func (i *Image) Circle(center radar.Point, r float64, clr color.NRGBA, width float64) {
	if r <= 0 {
		return
	}
	i.c.SetLineWidth(vg.Length(width))
	i.c.SetColor(clr)
	i.c.Stroke(i.circle(center, r))
}

// FillCircle fills a disc.
func (i *Image) FillCircle(center radar.Point, r float64, clr color.NRGBA) {
	if r <= 0 {
		return
	}
	i.c.SetColor(clr)
	i.c.Fill(i.circle(center, r))
}

func (i *Image) circle(center radar.Point, r float64) vg.Path {
	c := i.pt(center)
	var p vg.Path
	p.Move(vg.Point{X: c.X + vg.Length(r), Y: c.Y})
	p.Arc(c, vg.Length(r), 0, 2*math.Pi)
	p.Close()
	return p
}

// FillPolygon fills a closed polygon.
func (i *Image) FillPolygon(pts []radar.Point, clr color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var p vg.Path
	p.Move(i.pt(pts[0]))
	for _, q := range pts[1:] {
		p.Line(i.pt(q))
	}
	p.Close()
	i.c.SetColor(clr)
	i.c.Fill(p)
}

// Text draws s centred on at.
func (i *Image) Text(at radar.Point, s string, clr color.NRGBA) {
	p := i.pt(at)
	p.X -= i.face.Width(s) / 2
	p.Y -= vg.Points(fontSize) * 0.35
	i.c.SetColor(clr)
	i.c.FillString(i.face, p, s)
}

// Image returns the rendered raster.
func (i *Image) Image() image.Image {
	return i.c.Image()
}

// WritePNG encodes the surface as PNG.
func (i *Image) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: i.c}.WriteTo(w)
	return err
}
