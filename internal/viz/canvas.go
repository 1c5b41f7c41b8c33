package viz

import (
	"strings"

	"github.com/san-kum/gridperm/internal/render"
)

// Braille cells hold 2x4 dots:
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

const blank = 0x2800

// Canvas is a braille raster of Width×Height characters, each holding 2×4 dots.
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
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
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

// Fill sets every dot in the half-open box [x0,x1)×[y0,y1).
func (c *Canvas) Fill(x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y)
		}
	}
}

// Outline draws the border of the half-open box [x0,x1)×[y0,y1).
func (c *Canvas) Outline(x0, y0, x1, y1 int) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c.DrawLine(x0, y0, x1-1, y0)
	c.DrawLine(x0, y1-1, x1-1, y1-1)
	c.DrawLine(x0, y0, x0, y1-1)
	c.DrawLine(x1-1, y0, x1-1, y1-1)
}

// DrawBoard projects cells onto the canvas, dots dots per pitch. Ones are
// filled and zeros outlined; a one-dot inset keeps neighbours apart.
func (c *Canvas) DrawBoard(cells []render.Cell, pitch float64, dots int) {
	if pitch <= 0 || dots <= 0 {
		return
	}
	scale := float64(dots) / pitch
	for _, cell := range cells {
		x0 := int(cell.Pos.X*scale + 0.5)
		y0 := int(cell.Pos.Y*scale + 0.5)
		x1, y1 := x0+dots, y0+dots
		if cell.Value == 1 {
			c.Fill(x0+1, y0+1, x1-1, y1-1)
		} else {
			c.Outline(x0+1, y0+1, x1-1, y1-1)
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
