package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a coordinate outside the grid bounds.
var ErrOutOfRange = errors.New("grid: coordinate out of range")

// RangeError reports which coordinate of an operation was rejected.
// A negative Row or Col means that component does not apply (whole column or row).
type RangeError struct {
	Op   string
	Row  int
	Col  int
	Size int
}

func (e *RangeError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("grid: %s: column %d outside [0,%d)", e.Op, e.Col, e.Size)
	case e.Col < 0:
		return fmt.Sprintf("grid: %s: row %d outside [0,%d)", e.Op, e.Row, e.Size)
	default:
		return fmt.Sprintf("grid: %s: cell (%d,%d) outside %dx%d", e.Op, e.Row, e.Col, e.Size, e.Size)
	}
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
