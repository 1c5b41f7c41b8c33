package script_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridperm/internal/action"
	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/grid"
	"github.com/san-kum/gridperm/internal/render"
	"github.com/san-kum/gridperm/internal/script"
)

// fakeOps runs each known token for a fixed number of frames and records
// the order in which tokens start and end.
type fakeOps struct {
	frames map[string]int
	events []string
	fail   string
	panic  string
}

func (f *fakeOps) Has(token string) bool {
	_, ok := f.frames[token]
	return ok
}

func (f *fakeOps) Start(token string) (clock.Stepper, error) {
	f.events = append(f.events, "start "+token)
	left := f.frames[token]
	return clock.StepperFunc(func(float64) (bool, error) {
		if token == f.panic {
			panic("boom")
		}
		if token == f.fail {
			return true, errors.New("task failed")
		}
		left--
		if left > 0 {
			return false, nil
		}
		f.events = append(f.events, "end "+token)
		return true, nil
	}), nil
}

var _ = Describe("Parse", func() {
	It("splits on whitespace, commas and semicolons", func() {
		tokens := script.Parse("H0, H1;Z0\tP0\n")
		Expect(script.Texts(tokens)).To(Equal([]string{"H0", "H1", "Z0", "P0"}))
		Expect(tokens[1].Offset).To(Equal(4))
		Expect(tokens[1].End()).To(Equal(6))
		Expect(tokens[3].Index).To(Equal(3))
		Expect(tokens[3].Offset).To(Equal(10))
	})

	It("drops empty segments", func() {
		Expect(script.Parse("   ,,; ")).To(BeEmpty())
		Expect(script.Texts(script.Parse(";;X0,,;"))).To(Equal([]string{"X0"}))
	})
})

var _ = Describe("Interpreter", func() {
	var (
		ops   *fakeOps
		in    *script.Interpreter
		busy  []bool
		seen  []script.Token
		drive = func(x *script.Execution) (int, error) {
			return clock.Drive(x, clock.Virtual{Dt: 0.1})
		}
	)

	BeforeEach(func() {
		ops = &fakeOps{frames: map[string]int{"H0": 2, "Z0": 3, "00": 1}}
		busy, seen = nil, nil
		in = script.New(ops, ops, script.WithTokenHook(func(t script.Token) { seen = append(seen, t) }))
		in.Lock().OnBusy(func(b bool) { busy = append(busy, b) })
	})

	It("fails an empty script with ErrEmptyScript", func() {
		err := in.Validate(script.Parse("   ,,; "))
		Expect(err).To(MatchError(script.ErrEmptyScript))
		_, err = in.Execute(nil)
		Expect(err).To(MatchError(script.ErrEmptyScript))
	})

	It("rejects a script with any unknown token before running anything", func() {
		_, err := in.Execute(script.Parse("H0 BOGUS Z0 NOPE BOGUS"))
		Expect(err).To(MatchError(script.ErrInvalidScript))

		var verr *script.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Invalid).To(Equal([]string{"BOGUS", "NOPE"}))
		Expect(err.Error()).To(ContainSubstring("BOGUS"))

		Expect(ops.events).To(BeEmpty())
		Expect(busy).To(BeEmpty())
		Expect(in.Phase()).To(Equal(script.Idle))
	})

	It("runs tokens strictly in order", func() {
		x, err := in.Execute(script.Parse("H0 Z0 00"))
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Phase()).To(Equal(script.Executing))

		ticks, err := drive(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(ops.events).To(Equal([]string{"start H0", "end H0", "start Z0", "end Z0", "start 00", "end 00"}))
		Expect(ticks).To(Equal(6))
		Expect(in.Phase()).To(Equal(script.Idle))
	})

	It("reports each token's position before it starts", func() {
		x, err := in.Execute(script.Parse("H0,  Z0"))
		Expect(err).NotTo(HaveOccurred())

		x.Step(0.1)
		cur, ok := x.Current()
		Expect(ok).To(BeTrue())
		Expect(cur.Text).To(Equal("H0"))

		_, err = drive(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(2))
		Expect(seen[1].Offset).To(Equal(5))
		Expect(seen[1].Index).To(Equal(1))
		_, ok = x.Current()
		Expect(ok).To(BeFalse())
	})

	It("holds the run-lock for the whole script and releases it once", func() {
		x, err := in.Execute(script.Parse("H0 Z0"))
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Lock().Busy()).To(BeTrue())

		_, err = drive(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Lock().Busy()).To(BeFalse())
		Expect(busy).To(Equal([]bool{true, false}))

		done, err := x.Step(0.1)
		Expect(done).To(BeTrue())
		Expect(err).NotTo(HaveOccurred())
		Expect(busy).To(Equal([]bool{true, false}))
	})

	It("refuses a second script while one is running", func() {
		x, err := in.Execute(script.Parse("H0"))
		Expect(err).NotTo(HaveOccurred())

		_, err = in.Execute(script.Parse("Z0"))
		Expect(err).To(MatchError(script.ErrBusy))

		other := script.New(ops, ops, script.WithLock(in.Lock()))
		_, err = other.Execute(script.Parse("Z0"))
		Expect(err).To(MatchError(script.ErrBusy))

		_, err = drive(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(ops.events).To(Equal([]string{"start H0", "end H0"}))

		x2, err := other.Execute(script.Parse("Z0"))
		Expect(err).NotTo(HaveOccurred())
		_, err = drive(x2)
		Expect(err).NotTo(HaveOccurred())
	})

	It("aborts remaining tokens on failure and releases the lock", func() {
		ops.fail = "Z0"
		x, err := in.Execute(script.Parse("H0 Z0 00"))
		Expect(err).NotTo(HaveOccurred())

		_, err = drive(x)
		Expect(err).To(MatchError("task failed"))
		Expect(x.Failed().Text).To(Equal("Z0"))
		Expect(ops.events).To(Equal([]string{"start H0", "end H0", "start Z0"}))
		Expect(in.Lock().Busy()).To(BeFalse())
		Expect(in.Phase()).To(Equal(script.Idle))
	})

	It("releases the lock when a task panics", func() {
		ops.panic = "H0"
		x, err := in.Execute(script.Parse("H0"))
		Expect(err).NotTo(HaveOccurred())

		Expect(func() { x.Step(0.1) }).To(Panic())
		Expect(in.Lock().Busy()).To(BeFalse())
		Expect(x.Finished()).To(BeTrue())
	})

	It("wraps run failures with the token index", func() {
		ops.fail = "Z0"
		_, err := in.Run("H0 Z0", clock.Virtual{Dt: 0.1})
		Expect(err).To(MatchError(ContainSubstring("token 1")))
	})
})

var _ = Describe("Interpreter over the default registry", func() {
	var (
		g  *grid.Grid
		in *script.Interpreter
	)

	BeforeEach(func() {
		var err error
		g, err = grid.NewWithOnes(action.DefaultSize, action.BottomLeft)
		Expect(err).NotTo(HaveOccurred())
		reg, err := action.NewRegistry(action.DefaultSize, action.Default())
		Expect(err).NotTo(HaveOccurred())
		b := render.NewBoard(g, 50)
		a := anim.New(g, b, anim.Config{Duration: 0.3, CellSize: 50})
		in = script.New(reg, action.NewDispatcher(reg, g, a, b, action.DefaultPause))
	})

	It("runs the center columns swap end to end", func() {
		_, err := in.Run("H0", clock.Virtual{Dt: 1.0 / 60})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Rows()).To(Equal([]string{"0000", "0000", "1010", "1010"}))
	})

	It("leaves the grid untouched when validation fails", func() {
		before := g.Snapshot()
		_, err := in.Run("H0 BOGUS Z0", clock.Virtual{Dt: 1.0 / 60})
		Expect(err).To(MatchError(script.ErrInvalidScript))
		Expect(g.Equal(before)).To(BeTrue())
	})

	It("conserves the number of ones across a long script", func() {
		before := g.Ones()
		_, err := in.Run("H0 H1 Z0 Z1 P0 P1 X0 X1 CZ CX HH", clock.Virtual{Dt: 1.0 / 30})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Ones()).To(Equal(before))
	})

	It("never starts a second animation in the same frame", func() {
		x, err := in.Execute(script.Parse("H0 H1"))
		Expect(err).NotTo(HaveOccurred())

		changes := 0
		last := g.Snapshot()
		for {
			done, err := x.Step(1.0 / 60)
			Expect(err).NotTo(HaveOccurred())
			if !g.Equal(last) {
				changes++
				last = g.Snapshot()
			}
			if done {
				break
			}
		}
		Expect(changes).To(Equal(2))
	})
})
