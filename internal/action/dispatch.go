package action

import (
	"fmt"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/grid"
)

// DefaultPause is the gap inserted between composite steps, in seconds.
const DefaultPause = 0.05

// Dispatcher turns tokens into runnable tasks over a grid and animator.
type Dispatcher struct {
	registry *Registry
	grid     *grid.Grid
	animator *anim.Animator
	renderer anim.Renderer
	pause    float64
}

func NewDispatcher(reg *Registry, g *grid.Grid, a *anim.Animator, r anim.Renderer, pause float64) *Dispatcher {
	if pause < 0 {
		pause = 0
	}
	return &Dispatcher{registry: reg, grid: g, animator: a, renderer: r, pause: pause}
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Start begins the operation bound to token. Every variant yields the same
// contract: step until done, with model changes committed as a side effect.
func (d *Dispatcher) Start(token string) (clock.Stepper, error) {
	op, ok := d.registry.Lookup(token)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	return d.run(op), nil
}

func (d *Dispatcher) run(op Operation) clock.Stepper {
	switch op := op.(type) {
	case Animate:
		return &animateTask{session: d.animator.Animate(op.Pairs, op.Axis)}
	case Reset:
		return clock.Instant(func() error {
			if err := d.grid.SetCellsToOnes(op.Coords); err != nil {
				return err
			}
			d.renderer.Redraw(d.grid)
			return nil
		})
	case Composite:
		starts := make([]func() (clock.Stepper, error), 0, 2*len(op.Steps))
		for i, step := range op.Steps {
			if i > 0 && d.pause > 0 {
				pause := d.pause
				starts = append(starts, func() (clock.Stepper, error) { return clock.Delay(pause), nil })
			}
			starts = append(starts, func() (clock.Stepper, error) { return d.Start(step) })
		}
		return clock.NewChain(starts...)
	}
	return clock.Instant(func() error { return nil })
}

type animateTask struct {
	session *anim.Session
}

func (t *animateTask) Step(dt float64) (bool, error) {
	if !t.session.Step(dt) {
		return false, nil
	}
	return true, t.session.Err()
}
