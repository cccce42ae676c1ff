package viz

import (
	"math"
	"strings"

	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/geometry"
)

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas of Width x Height cells, addressed
// in subpixels: (Width*2) x (Height*4) dots. World coordinates enter
// through Plot and the body/trail helpers, which apply the left-up
// display transform about the canvas center.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set turns on the subpixel at (x, y). Out-of-range coordinates are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset turns off the subpixel at (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// middle is the canvas center in subpixels.
func (c *Canvas) middle() geometry.Vector2 {
	return geometry.Vector2{X: float64(c.Width), Y: float64(c.Height * 2)}
}

// Plot maps a world position through the left-up transform and sets
// the resulting subpixel.
func (c *Canvas) Plot(v geometry.Vector2, scale float64) {
	p := v.LeftUp(c.middle(), scale)
	c.Set(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// PlotBody draws a body as a filled disc. Sub-subpixel radii still
// produce a single dot, so distant bodies stay visible.
func (c *Canvas) PlotBody(b *dynamics.Body, scale float64) {
	center := b.Shape.Center.Position.LeftUp(c.middle(), scale)
	cx := int(math.Round(center.X))
	cy := int(math.Round(center.Y))
	r := b.Shape.Radius * scale
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	ri := int(math.Round(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// PlotTrail draws every recorded trajectory sample of a point, oldest
// first. Samples are single dots; the trail density itself encodes
// speed.
func (c *Canvas) PlotTrail(p *dynamics.Point, scale float64) {
	for k := 0; k < dynamics.TrajectorySize; k++ {
		c.Plot(p.PositionAt(k), scale)
	}
}

// PlotCross marks a position with a small cross, used for the
// barycenter.
func (c *Canvas) PlotCross(v geometry.Vector2, scale float64) {
	p := v.LeftUp(c.middle(), scale)
	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))
	for d := -2; d <= 2; d++ {
		c.Set(cx+d, cy)
		c.Set(cx, cy+d)
	}
}

// DrawLine draws a subpixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
