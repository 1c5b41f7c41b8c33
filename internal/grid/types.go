package grid

import (
	"fmt"
	"strings"
)

// Coord addresses a cell as (row, col). In a swap request it names the
// leading cell of an adjacent pair; the partner is its neighbour along the axis.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Axis selects the direction of an adjacent swap.
type Axis int

const (
	// Column swaps exchange (row,col) with (row,col+1).
	Column Axis = iota
	// Row swaps exchange (row,col) with (row+1,col).
	Row
)

func (a Axis) String() string {
	switch a {
	case Column:
		return "column"
	case Row:
		return "row"
	default:
		return "unknown"
	}
}

// Neighbor returns the partner of c for a swap along a.
func (a Axis) Neighbor(c Coord) Coord {
	if a == Row {
		return Coord{Row: c.Row + 1, Col: c.Col}
	}
	return Coord{Row: c.Row, Col: c.Col + 1}
}

// ParseAxis accepts "column"/"col"/"x" and "row"/"y".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "column", "columns", "col", "x":
		return Column, nil
	case "row", "rows", "y":
		return Row, nil
	}
	return Column, fmt.Errorf("grid: unknown axis %q", s)
}

// CheckPairs verifies that every pair and its neighbour along axis fit in a
// size×size grid.
func CheckPairs(size int, pairs []Coord, axis Axis) error {
	op := "swap " + axis.String() + " pairs"
	for _, p := range pairs {
		if !inBounds(size, p) {
			return &RangeError{Op: op, Row: p.Row, Col: p.Col, Size: size}
		}
		if n := axis.Neighbor(p); !inBounds(size, n) {
			return &RangeError{Op: op, Row: n.Row, Col: n.Col, Size: size}
		}
	}
	return nil
}

// CheckCoords verifies that every coordinate fits in a size×size grid.
func CheckCoords(size int, coords []Coord) error {
	for _, c := range coords {
		if !inBounds(size, c) {
			return &RangeError{Op: "set cells", Row: c.Row, Col: c.Col, Size: size}
		}
	}
	return nil
}

func inBounds(size int, c Coord) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}
