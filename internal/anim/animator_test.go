package anim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

type fakeRenderer struct {
	pitch   float64
	pos     map[grid.Coord]anim.Point
	redraws int
	values  []string
}

func newFakeRenderer(g *grid.Grid, pitch float64) *fakeRenderer {
	r := &fakeRenderer{pitch: pitch}
	r.Redraw(g)
	r.redraws = 0
	return r
}

func (r *fakeRenderer) Position(row, col int) anim.Point {
	return r.pos[grid.Coord{Row: row, Col: col}]
}

func (r *fakeRenderer) SetPosition(row, col int, p anim.Point) {
	r.pos[grid.Coord{Row: row, Col: col}] = p
}

func (r *fakeRenderer) Redraw(g *grid.Grid) {
	r.pos = make(map[grid.Coord]anim.Point)
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			r.pos[grid.Coord{Row: row, Col: col}] = anim.Point{X: float64(col) * r.pitch, Y: float64(row) * r.pitch}
		}
	}
	r.values = g.Rows()
	r.redraws++
}

type recorder struct {
	samples []anim.Sample
	commits int
}

func (r *recorder) OnStep(s anim.Sample) { r.samples = append(r.samples, s) }
func (r *recorder) OnCommit(axis grid.Axis, pairs []grid.Coord) {
	r.commits++
}

var centerColumns = []grid.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 3, Col: 1}}

var _ = Describe("Ease", func() {
	It("accelerates then decelerates", func() {
		Expect(anim.Ease(0)).To(Equal(0.0))
		Expect(anim.Ease(0.25)).To(Equal(0.125))
		Expect(anim.Ease(0.5)).To(Equal(0.5))
		Expect(anim.Ease(0.75)).To(Equal(0.875))
		Expect(anim.Ease(1)).To(Equal(1.0))
	})
})

var _ = Describe("Animator", func() {
	var (
		g        *grid.Grid
		r        *fakeRenderer
		rec      *recorder
		animator *anim.Animator
	)

	BeforeEach(func() {
		var err error
		g, err = grid.NewWithOnes(4, []grid.Coord{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 3, Col: 0}, {Row: 3, Col: 1}})
		Expect(err).NotTo(HaveOccurred())
		r = newFakeRenderer(g, 50)
		rec = &recorder{}
		animator = anim.New(g, r, anim.Config{Duration: 1.0, CellSize: 50})
		animator.AddObserver(rec)
	})

	It("moves leading cells forward and trailing cells back", func() {
		s := animator.Animate(centerColumns, grid.Column)
		Expect(s.State()).To(Equal(anim.Running))

		Expect(s.Step(0.5)).To(BeFalse())
		Expect(s.Eased()).To(Equal(0.5))
		Expect(r.Position(2, 1)).To(Equal(anim.Point{X: 75, Y: 100}))
		Expect(r.Position(2, 2)).To(Equal(anim.Point{X: 75, Y: 100}))
		Expect(r.Position(2, 0)).To(Equal(anim.Point{X: 0, Y: 100}))
	})

	It("moves along Y for row swaps", func() {
		s := animator.Animate([]grid.Coord{{Row: 1, Col: 0}}, grid.Row)
		s.Step(0.25)
		Expect(r.Position(1, 0)).To(Equal(anim.Point{X: 0, Y: 50 + 50*0.125}))
		Expect(r.Position(2, 0)).To(Equal(anim.Point{X: 0, Y: 100 - 50*0.125}))
	})

	It("commits exactly once after the interpolation settles", func() {
		before := g.Snapshot()
		expected := g.Snapshot()
		Expect(expected.SwapCellsByColumnPairs(centerColumns)).To(Succeed())

		s := animator.Animate(centerColumns, grid.Column)
		dts := []float64{0.1, 0.05, 0.3, 0.2, 0.1}
		for _, dt := range dts {
			Expect(s.Step(dt)).To(BeFalse())
			Expect(g.Equal(before)).To(BeTrue(), "grid changed mid-interpolation")
			Expect(r.redraws).To(Equal(0))
		}

		Expect(s.Step(0.5)).To(BeTrue())
		Expect(s.State()).To(Equal(anim.Done))
		Expect(g.Equal(expected)).To(BeTrue())
		Expect(r.redraws).To(Equal(1))
		Expect(rec.commits).To(Equal(1))

		Expect(s.Step(1)).To(BeTrue())
		Expect(g.Equal(expected)).To(BeTrue())
		Expect(r.redraws).To(Equal(1))
		Expect(rec.commits).To(Equal(1))
	})

	It("keeps progress monotonic and clamps it to one", func() {
		s := animator.Animate(centerColumns, grid.Column)
		last := 0.0
		for _, dt := range []float64{0.3, 0, -0.2, 0.4, 0.7} {
			s.Step(dt)
			Expect(s.Progress()).To(BeNumerically(">=", last))
			last = s.Progress()
		}
		Expect(s.Progress()).To(Equal(1.0))

		for i := 1; i < len(rec.samples); i++ {
			Expect(rec.samples[i].Progress).To(BeNumerically(">=", rec.samples[i-1].Progress))
		}
		final := rec.samples[len(rec.samples)-1]
		Expect(final.Committed).To(BeTrue())
		Expect(final.Progress).To(Equal(1.0))
	})

	It("swaps the (2,1)/(2,2) values for the center columns", func() {
		s := animator.Animate(centerColumns, grid.Column)
		for !s.Step(1.0 / 60) {
		}
		v, _ := g.Get(2, 2)
		Expect(v).To(Equal(uint8(1)))
		v, _ = g.Get(2, 1)
		Expect(v).To(Equal(uint8(0)))
		Expect(g.Rows()).To(Equal([]string{"0000", "0000", "1010", "1010"}))
		Expect(r.values).To(Equal(g.Rows()))
	})

	It("resolves an empty batch immediately", func() {
		before := g.Snapshot()
		s := animator.Animate(nil, grid.Column)
		Expect(s.State()).To(Equal(anim.Done))
		Expect(s.Step(0.1)).To(BeTrue())
		Expect(g.Equal(before)).To(BeTrue())
		Expect(r.redraws).To(Equal(0))
		Expect(rec.commits).To(Equal(0))
	})

	It("commits on the first step when duration is zero", func() {
		instant := anim.New(g, r, anim.Config{CellSize: 50})
		s := instant.Animate(centerColumns, grid.Column)
		Expect(s.Step(0.001)).To(BeTrue())
		Expect(g.Rows()).To(Equal([]string{"0000", "0000", "1010", "1010"}))
	})

	It("reports a rejected commit without changing the grid", func() {
		before := g.Snapshot()
		s := animator.Animate([]grid.Coord{{Row: 0, Col: 3}}, grid.Column)
		Expect(s.Step(2)).To(BeTrue())
		Expect(s.Err()).To(MatchError(grid.ErrOutOfRange))
		Expect(g.Equal(before)).To(BeTrue())
	})
})
