package action

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridperm/internal/grid"
)

// Kind tags an Operation variant.
type Kind int

const (
	KindAnimate Kind = iota
	KindComposite
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindAnimate:
		return "animate"
	case KindComposite:
		return "composite"
	case KindReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "animate":
		return KindAnimate, nil
	case "composite":
		return KindComposite, nil
	case "reset":
		return KindReset, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, s)
}

// Operation is one of Animate, Composite or Reset.
type Operation interface {
	Kind() Kind
	isOperation()
}

// Animate swaps a batch of adjacent pairs along Axis with one animation.
type Animate struct {
	Axis  grid.Axis
	Pairs []grid.Coord
}

// Composite runs other tokens back-to-back with a pause in between.
type Composite struct {
	Steps []string
}

// Reset sets Coords to 1 and redraws without animating.
type Reset struct {
	Coords []grid.Coord
}

func (Animate) Kind() Kind   { return KindAnimate }
func (Composite) Kind() Kind { return KindComposite }
func (Reset) Kind() Kind     { return KindReset }

func (Animate) isOperation()   {}
func (Composite) isOperation() {}
func (Reset) isOperation()     {}

// Describe summarises an operation for listings.
func Describe(op Operation) string {
	switch op := op.(type) {
	case Animate:
		return fmt.Sprintf("swap %s pairs %s", op.Axis, coords(op.Pairs))
	case Composite:
		return "sequence " + strings.Join(op.Steps, " ")
	case Reset:
		return "set ones " + coords(op.Coords)
	}
	return ""
}

func coords(cs []grid.Coord) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
