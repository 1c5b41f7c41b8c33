// Package grid holds the authoritative N×N binary matrix and its permutation
// operations.
//
// Every mutation validates all of its coordinates before touching a cell, so
// a rejected call leaves the grid exactly as it was. Swaps only relocate
// values; the number of ones never changes except through [Grid.SetCellsToOnes].
//
// A Grid is not safe for concurrent use.
package grid

import "strings"

// Grid stores size×size cells of 0 or 1 in row-major order.
type Grid struct {
	size  int
	cells [][]uint8
}

// New allocates an all-zero grid. Sizes below one are clamped to one.
func New(size int) *Grid {
	if size <= 0 {
		size = 1
	}
	cells := make([][]uint8, size)
	for i := range cells {
		cells[i] = make([]uint8, size)
	}
	return &Grid{size: size, cells: cells}
}

// NewWithOnes allocates a grid and seeds the given coordinates to 1.
func NewWithOnes(size int, ones []Coord) (*Grid, error) {
	g := New(size)
	if err := g.SetCellsToOnes(ones); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Size() int { return g.size }

// Get returns the value at (row, col).
func (g *Grid) Get(row, col int) (uint8, error) {
	if !inBounds(g.size, Coord{Row: row, Col: col}) {
		return 0, &RangeError{Op: "get", Row: row, Col: col, Size: g.size}
	}
	return g.cells[row][col], nil
}

// SwapColumns exchanges columns c1 and c2 in every row.
func (g *Grid) SwapColumns(c1, c2 int) error {
	for _, c := range []int{c1, c2} {
		if c < 0 || c >= g.size {
			return &RangeError{Op: "swap columns", Row: -1, Col: c, Size: g.size}
		}
	}
	for _, row := range g.cells {
		row[c1], row[c2] = row[c2], row[c1]
	}
	return nil
}

// SwapRows exchanges rows r1 and r2 by swapping the row slices.
func (g *Grid) SwapRows(r1, r2 int) error {
	for _, r := range []int{r1, r2} {
		if r < 0 || r >= g.size {
			return &RangeError{Op: "swap rows", Row: r, Col: -1, Size: g.size}
		}
	}
	g.cells[r1], g.cells[r2] = g.cells[r2], g.cells[r1]
	return nil
}

// SwapCellsByColumnPairs exchanges (row,col) with (row,col+1) for each pair,
// applied in order.
func (g *Grid) SwapCellsByColumnPairs(pairs []Coord) error {
	return g.SwapPairs(pairs, Column)
}

// SwapCellsByRowPairs exchanges (row,col) with (row+1,col) for each pair,
// applied in order.
func (g *Grid) SwapCellsByRowPairs(pairs []Coord) error {
	return g.SwapPairs(pairs, Row)
}

// SwapPairs applies a batch of adjacent swaps along axis. Nothing is swapped
// unless every pair is in range.
func (g *Grid) SwapPairs(pairs []Coord, axis Axis) error {
	if err := CheckPairs(g.size, pairs, axis); err != nil {
		return err
	}
	for _, p := range pairs {
		n := axis.Neighbor(p)
		g.cells[p.Row][p.Col], g.cells[n.Row][n.Col] = g.cells[n.Row][n.Col], g.cells[p.Row][p.Col]
	}
	return nil
}

// SetCellsToOnes forces each coordinate to 1. Other cells are left alone.
func (g *Grid) SetCellsToOnes(coords []Coord) error {
	if err := CheckCoords(g.size, coords); err != nil {
		return err
	}
	for _, c := range coords {
		g.cells[c.Row][c.Col] = 1
	}
	return nil
}

// Ones counts the cells set to 1.
func (g *Grid) Ones() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			n += int(v)
		}
	}
	return n
}

// Snapshot returns a deep copy.
func (g *Grid) Snapshot() *Grid {
	c := New(g.size)
	for i, row := range g.cells {
		copy(c.cells[i], row)
	}
	return c
}

// Equal reports whether both grids have the same size and values.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i, row := range g.cells {
		for j, v := range row {
			if other.cells[i][j] != v {
				return false
			}
		}
	}
	return true
}

// Rows renders each row as a string of '0' and '1'.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	for i, row := range g.cells {
		b := make([]byte, len(row))
		for j, v := range row {
			b[j] = '0' + v
		}
		rows[i] = string(b)
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
