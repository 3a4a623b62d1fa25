package canvas

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sweep-radar.klederson.com/internal/radar"
)

type cell struct {
	r      rune
	fg, bg color.NRGBA
}

type styleKey struct {
	fg, bg color.NRGBA
}

// maxStyles bounds the style cache; fading colours produce many pairs.
const maxStyles = 512

// Cells is a terminal character grid. One surface unit is one column
// horizontally and aspect rows vertically, so circles stay round on
// cells that are about twice as tall as they are wide.
type Cells struct {
	cols, rows int
	aspect     float64
	cells      []cell
	styles     map[styleKey]lipgloss.Style
}

var _ radar.Surface = (*Cells)(nil)

// NewCells creates a cols×rows grid.
func NewCells(cols, rows int, aspect float64) *Cells {
	c := &Cells{aspect: aspect, styles: make(map[styleKey]lipgloss.Style)}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid dimensions and clears it.
func (c *Cells) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(c.cells) < size {
		c.cells = make([]cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.cols, c.rows = cols, rows
	clear(c.styles)
	c.Clear(color.NRGBA{A: 0xFF})
}

// Dimensions returns the grid size in cells.
func (c *Cells) Dimensions() (cols, rows int) {
	return c.cols, c.rows
}

// Size returns the surface size in units.
func (c *Cells) Size() (float64, float64) {
	return float64(c.cols), float64(c.rows) / c.aspect
}

// cellAt maps a surface point to the cell containing it.
func (c *Cells) cellAt(p radar.Point) (col, row int, ok bool) {
	if !finite(p.X) || !finite(p.Y) {
		return 0, 0, false
	}
	col = int(math.Round(p.X))
	row = int(math.Round(p.Y * c.aspect))
	return col, row, c.inBounds(col, row)
}

func (c *Cells) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// center returns the surface point at the middle of a cell.
func (c *Cells) center(col, row int) radar.Point {
	return radar.Point{X: float64(col), Y: float64(row) / c.aspect}
}

func (c *Cells) setRune(col, row int, r rune, clr color.NRGBA) {
	if !c.inBounds(col, row) {
		return
	}
	dst := &c.cells[row*c.cols+col]
	dst.r = r
	dst.fg = blend(dst.bg, clr)
}

func (c *Cells) tint(col, row int, clr color.NRGBA) {
	if !c.inBounds(col, row) {
		return
	}
	dst := &c.cells[row*c.cols+col]
	dst.bg = blend(dst.bg, clr)
}

// Clear resets every cell to a blank on colour clr.
func (c *Cells) Clear(clr color.NRGBA) {
	blank := cell{r: ' ', fg: opaque(clr), bg: opaque(clr)}
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// Line draws a stroke from a to b with a character matching its slope.
func (c *Cells) Line(a, b radar.Point, clr color.NRGBA, _ float64) {
	if !finite(a.X) || !finite(a.Y) || !finite(b.X) || !finite(b.Y) {
		return
	}
	dx := b.X - a.X
	dy := (b.Y - a.Y) * c.aspect
	ch := lineRune(dx, dy)

	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row, ok := c.cellAt(radar.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		if ok {
			c.setRune(col, row, ch, clr)
		}
	}
}

// Circle strokes a ring, choosing each character from the ring's tangent.
func (c *Cells) Circle(center radar.Point, r float64, clr color.NRGBA, _ float64) {
	if r <= 0 || !finite(r) {
		return
	}
	steps := int(4 * math.Pi * r)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		p := radar.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		col, row, ok := c.cellAt(p)
		if ok {
			c.setRune(col, row, lineRune(-math.Sin(a), math.Cos(a)*c.aspect), clr)
		}
	}
}

// FillCircle tints the background of every cell inside the circle. A circle
// smaller than a cell is drawn as a single dot instead.
func (c *Cells) FillCircle(center radar.Point, r float64, clr color.NRGBA) {
	col, row, ok := c.cellAt(center)
	if r < 1 {
		if ok {
			c.setRune(col, row, '●', clr)
		}
		return
	}
	if !finite(center.X) || !finite(center.Y) || !finite(r) {
		return
	}

	c0, r0, _ := c.cellAt(radar.Point{X: center.X - r, Y: center.Y - r})
	c1, r1, _ := c.cellAt(radar.Point{X: center.X + r, Y: center.Y + r})
	for y := max(r0, 0); y <= min(r1, c.rows-1); y++ {
		for x := max(c0, 0); x <= min(c1, c.cols-1); x++ {
			p := c.center(x, y)
			if math.Hypot(p.X-center.X, p.Y-center.Y) <= r {
				c.tint(x, y, clr)
			}
		}
	}
}

// FillPolygon tints the background of every cell whose centre lies inside
// the polygon.
func (c *Cells) FillPolygon(pts []radar.Point, clr color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			return
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	c0, r0, _ := c.cellAt(radar.Point{X: minX, Y: minY})
	c1, r1, _ := c.cellAt(radar.Point{X: maxX, Y: maxY})
	for y := max(r0, 0); y <= min(r1, c.rows-1); y++ {
		for x := max(c0, 0); x <= min(c1, c.cols-1); x++ {
			if inPolygon(c.center(x, y), pts) {
				c.tint(x, y, clr)
			}
		}
	}
}

// Text writes s centred on at.
func (c *Cells) Text(at radar.Point, s string, clr color.NRGBA) {
	if !finite(at.X) || !finite(at.Y) {
		return
	}
	col, row, _ := c.cellAt(at)
	if row < 0 || row >= c.rows {
		return
	}
	col -= runewidth.StringWidth(s) / 2
	for _, r := range s {
		c.setRune(col, row, r, clr)
		col += runewidth.RuneWidth(r)
	}
}

// At returns the character and colours of one cell.
func (c *Cells) At(col, row int) (r rune, fg, bg color.NRGBA) {
	if !c.inBounds(col, row) {
		return 0, color.NRGBA{}, color.NRGBA{}
	}
	cl := c.cells[row*c.cols+col]
	return cl.r, cl.fg, cl.bg
}

// Plain returns the grid characters without styling.
func (c *Cells) Plain() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			sb.WriteRune(c.cells[row*c.cols+col].r)
		}
		if row < c.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// String renders the grid as styled terminal output. Runs of cells with
// identical colours share one style.
func (c *Cells) String() string {
	var sb strings.Builder
	var run []rune
	for row := 0; row < c.rows; row++ {
		runKey := styleKey{}
		run = run[:0]
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			key := styleKey{fg: cl.fg, bg: cl.bg}
			if len(run) > 0 && key != runKey {
				sb.WriteString(c.style(runKey).Render(string(run)))
				run = run[:0]
			}
			runKey = key
			run = append(run, cl.r)
		}
		if len(run) > 0 {
			sb.WriteString(c.style(runKey).Render(string(run)))
		}
		if row < c.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (c *Cells) style(k styleKey) lipgloss.Style {
	if s, ok := c.styles[k]; ok {
		return s
	}
	if len(c.styles) >= maxStyles {
		clear(c.styles)
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex(k.fg))).
		Background(lipgloss.Color(hex(k.bg)))
	c.styles[k] = s
	return s
}

// lineRune picks the ASCII stroke closest to direction (dx, dy), in cell
// space with y growing downward.
func lineRune(dx, dy float64) rune {
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += math.Pi
	}
	switch int(math.Round(a/(math.Pi/4))) % 4 {
	case 0:
		return '-'
	case 1:
		return '\\'
	case 2:
		return '|'
	default:
		return '/'
	}
}

// inPolygon is the even-odd ray casting test.
func inPolygon(p radar.Point, pts []radar.Point) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}
