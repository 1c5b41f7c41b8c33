// Package clock drives steppable tasks from a frame clock.
//
// Tasks never block; they are advanced by [Stepper.Step] with the seconds
// elapsed since the previous frame and report when they are done. A [Clock]
// supplies those deltas, either instantly ([Virtual]) or paced to wall time
// ([Realtime]).
package clock

import "time"

// Stepper is a cooperative task advanced one frame at a time.
type Stepper interface {
	Step(dt float64) (done bool, err error)
}

// StepperFunc adapts a function to Stepper.
type StepperFunc func(dt float64) (bool, error)

func (f StepperFunc) Step(dt float64) (bool, error) { return f(dt) }

// Clock yields the elapsed seconds for the next frame, blocking if paced.
type Clock interface {
	Next() float64
}

// Virtual advances by a fixed delta without waiting.
type Virtual struct {
	Dt float64
}

func (v Virtual) Next() float64 { return v.Dt }

// Realtime paces frames to a target rate and reports measured elapsed time.
type Realtime struct {
	ticker *time.Ticker
	last   time.Time
}

// NewRealtime targets fps frames per second; non-positive rates default to 60.
func NewRealtime(fps int) *Realtime {
	if fps <= 0 {
		fps = 60
	}
	return &Realtime{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		last:   time.Now(),
	}
}

func (r *Realtime) Next() float64 {
	now := <-r.ticker.C
	dt := now.Sub(r.last).Seconds()
	r.last = now
	if dt < 0 {
		dt = 0
	}
	return dt
}

func (r *Realtime) Stop() { r.ticker.Stop() }

// Drive steps s until it is done or fails and returns the number of frames used.
func Drive(s Stepper, c Clock) (int, error) {
	ticks := 0
	for {
		done, err := s.Step(c.Next())
		ticks++
		if err != nil {
			return ticks, err
		}
		if done {
			return ticks, nil
		}
	}
}
