package viz

import "strings"

// A braille cell packs a 2x4 dot grid into one rune above U+2800.
// Dot bit layout per cell:
//
//	0x01 0x08
//	0x02 0x10
//	0x04 0x20
//	0x40 0x80
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot raster. Cells are Width x Height runes; the
// drawable dot grid is twice as wide and four times as tall.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// DotWidth returns the canvas width in dots.
func (c *Canvas) DotWidth() int { return c.Width * 2 }

// DotHeight returns the canvas height in dots.
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Set turns on the dot at (x, y) in dot coordinates. Out-of-range dots
// are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= dotBits[y%4][x%2]
}

// Dot draws a 3x3 blob centered on (x, y), the pellet glyph.
func (c *Canvas) Dot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// On reports whether the dot at (x, y) is set.
func (c *Canvas) On(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return false
	}
	return c.cells[(y/4)*c.Width+x/2]&dotBits[y%4][x%2] != 0
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Line draws a dot line from (x0, y0) to (x1, y1) with Bresenham's
// algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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
	b.Grow((c.Width*3 + 1) * c.Height)
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
