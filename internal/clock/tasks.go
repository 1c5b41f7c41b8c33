package clock

// Delay is done once the given number of seconds has elapsed.
func Delay(seconds float64) Stepper {
	remaining := seconds
	return StepperFunc(func(dt float64) (bool, error) {
		if dt > 0 {
			remaining -= dt
		}
		return remaining <= 1e-9, nil
	})
}

// Instant runs fn on the first step and is done immediately.
func Instant(fn func() error) Stepper {
	ran := false
	return StepperFunc(func(float64) (bool, error) {
		if ran {
			return true, nil
		}
		ran = true
		return true, fn()
	})
}

// Chain runs tasks one after another. Each task is created by its start
// function only once the previous task has finished, and the next task
// begins on the following frame. The first error stops the chain.
type Chain struct {
	starts []func() (Stepper, error)
	next   int
	cur    Stepper
	done   bool
	err    error
}

func NewChain(starts ...func() (Stepper, error)) *Chain {
	return &Chain{starts: starts}
}

func (c *Chain) Step(dt float64) (bool, error) {
	if c.done {
		return true, c.err
	}
	if c.cur == nil {
		if c.next >= len(c.starts) {
			c.done = true
			return true, nil
		}
		s, err := c.starts[c.next]()
		c.next++
		if err != nil {
			return c.fail(err)
		}
		c.cur = s
	}

	done, err := c.cur.Step(dt)
	if err != nil {
		return c.fail(err)
	}
	if !done {
		return false, nil
	}
	c.cur = nil
	if c.next >= len(c.starts) {
		c.done = true
		return true, nil
	}
	return false, nil
}

func (c *Chain) fail(err error) (bool, error) {
	c.done, c.err, c.cur = true, err, nil
	return true, err
}
