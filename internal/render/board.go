// Package render keeps the per-cell position cache the animator draws on and
// projects it onto character rasters for terminal output.
package render

import (
	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

// Board implements anim.Renderer. Positions are in layout units; Redraw
// copies values from the grid and puts every cell back on its slot.
type Board struct {
	size    int
	pitch   float64
	values  [][]uint8
	pos     [][]anim.Point
	redraws int
}

func NewBoard(g *grid.Grid, pitch float64) *Board {
	b := &Board{pitch: pitch}
	b.Redraw(g)
	b.redraws = 0
	return b
}

func (b *Board) Size() int { return b.size }
func (b *Board) Pitch() float64 { return b.pitch }
func (b *Board) Redraws() int { return b.redraws }
func (b *Board) in(r, c int) bool { return r >= 0 && r < b.size && c >= 0 && c < b.size }

func (b *Board) Position(row, col int) anim.Point {
	if !b.in(row, col) {
		return anim.Point{}
	}
	return b.pos[row][col]
}

func (b *Board) SetPosition(row, col int, p anim.Point) {
	if b.in(row, col) {
		b.pos[row][col] = p
	}
}

// Value is the value the cell was last drawn with.
func (b *Board) Value(row, col int) uint8 {
	if !b.in(row, col) {
		return 0
	}
	return b.values[row][col]
}

func (b *Board) Redraw(g *grid.Grid) {
	n := g.Size()
	if n != b.size {
		b.size = n
		b.values = make([][]uint8, n)
		b.pos = make([][]anim.Point, n)
		for i := 0; i < n; i++ {
			b.values[i] = make([]uint8, n)
			b.pos[i] = make([]anim.Point, n)
		}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v, _ := g.Get(r, c)
			b.values[r][c] = v
			b.pos[r][c] = anim.Point{X: float64(c) * b.pitch, Y: float64(r) * b.pitch}
		}
	}
	b.redraws++
}

// Cell is one drawable cell.
type Cell struct {
	Row, Col int
	Value    uint8
	Pos      anim.Point
}

// Cells lists every cell, zeros first so that ones are drawn on top.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, b.size*b.size)
	for _, want := range []uint8{0, 1} {
		for r := 0; r < b.size; r++ {
			for c := 0; c < b.size; c++ {
				if b.values[r][c] == want {
					cells = append(cells, Cell{Row: r, Col: c, Value: want, Pos: b.pos[r][c]})
				}
			}
		}
	}
	return cells
}
