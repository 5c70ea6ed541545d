package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBase = 0x2800

var pixelMap = [4][2]uint8{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const noLayer = -1

// Canvas is a braille dot grid. Every cell remembers the last layer drawn
// into it so bodies and their trails can be coloured separately.
type Canvas struct {
	cols, rows int
	dots       []uint8
	layer      []int
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.dots = make([]uint8, cols*rows)
	c.layer = make([]int, cols*rows)
	c.Clear()
}

// Size reports the canvas size in dots.
func (c *Canvas) Size() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
		c.layer[i] = noLayer
	}
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y, layer int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	i := row*c.cols + col
	c.dots[i] |= pixelMap[y%4][x%2]
	c.layer[i] = layer
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.cols || y/4 >= c.rows {
		return false
	}
	return c.dots[(y/4)*c.cols+x/2]&pixelMap[y%4][x%2] != 0
}

// Line draws a Bresenham segment. Segments reaching far outside the canvas
// are reduced to their endpoints.
func (c *Canvas) Line(x0, y0, x1, y1, layer int) {
	if !c.near(x0, y0) || !c.near(x1, y1) {
		c.Set(x0, y0, layer)
		c.Set(x1, y1, layer)
		return
	}

	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, layer)
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

// Disc fills a square-ish blob of radius r around (x, y).
func (c *Canvas) Disc(x, y, r, layer int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r+r {
				c.Set(x+dx, y+dy, layer)
			}
		}
	}
}

func (c *Canvas) near(x, y int) bool {
	w, h := c.Size()
	return x >= -w && x <= 2*w && y >= -h && y <= 2*h
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			b.WriteRune(rune(brailleBase + int(c.dots[row*c.cols+col])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours each run of cells by its layer. Layers without a style
// and empty cells are written plain.
func (c *Canvas) Render(styles []lipgloss.Style) string {
	var b, run strings.Builder
	current := noLayer

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if current >= 0 && current < len(styles) {
			b.WriteString(styles[current].Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			l := c.layer[i]
			if c.dots[i] == 0 {
				l = noLayer
			}
			if l != current {
				flush()
				current = l
			}
			run.WriteRune(rune(brailleBase + int(c.dots[i])))
		}
		flush()
		current = noLayer
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
