package anim

import "github.com/san-kum/gridperm/internal/grid"

// Point is a cell's rendered position in layout units (pixels).
type Point struct {
	X, Y float64
}

// Renderer is the drawing surface the animator moves cells on.
type Renderer interface {
	Position(row, col int) Point
	SetPosition(row, col int, p Point)
	// Redraw rebuilds every cell from the grid's current values.
	Redraw(g *grid.Grid)
}

type Config struct {
	Duration float64 // seconds
	CellSize float64
	Spacing  float64
}

// Pitch is the distance between neighbouring cell origins.
func (c Config) Pitch() float64 { return c.CellSize + c.Spacing }

// Sample describes one step of a session.
type Sample struct {
	Axis      grid.Axis
	Time      float64 // accumulated seconds since the session started
	Progress  float64
	Eased     float64
	Committed bool
}

type Observer interface {
	OnStep(s Sample)
	OnCommit(axis grid.Axis, pairs []grid.Coord)
}

// State of a session.
type State int

const (
	Idle State = iota
	Running
	Committing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Committing:
		return "committing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Ease is the quadratic ease-in-out curve.
func Ease(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
