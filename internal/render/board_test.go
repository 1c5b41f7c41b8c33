package render

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

func seededGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.NewWithOnes(4, []grid.Coord{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 3, Col: 0}, {Row: 3, Col: 1}})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return g
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBoardRedrawResetsPositions(t *testing.T) {
	g := seededGrid(t)
	b := NewBoard(g, 50)

	if b.Redraws() != 0 {
		t.Errorf("expected 0 redraws after construction, got %d", b.Redraws())
	}
	if p := b.Position(3, 2); p.X != 100 || p.Y != 150 {
		t.Errorf("expected (100,150), got (%.0f,%.0f)", p.X, p.Y)
	}

	b.SetPosition(3, 2, anim.Point{X: 1, Y: 1})
	b.Redraw(g)
	if p := b.Position(3, 2); p.X != 100 || p.Y != 150 {
		t.Errorf("redraw should restore slot position, got (%.0f,%.0f)", p.X, p.Y)
	}
	if b.Redraws() != 1 {
		t.Errorf("expected 1 redraw, got %d", b.Redraws())
	}
	if b.Value(2, 1) != 1 || b.Value(0, 0) != 0 {
		t.Error("values not copied from grid")
	}
}

func TestBoardIgnoresOutOfRange(t *testing.T) {
	b := NewBoard(seededGrid(t), 50)
	b.SetPosition(9, 9, anim.Point{X: 5})
	if p := b.Position(9, 9); p != (anim.Point{}) {
		t.Errorf("expected zero point, got %+v", p)
	}
}

func TestASCIIInitial(t *testing.T) {
	b := NewBoard(seededGrid(t), 50)
	golden(t).Assert(t, "initial", []byte(ASCII(b, 2, 1)))
}

func TestASCIICenterColumns(t *testing.T) {
	g := seededGrid(t)
	b := NewBoard(g, 50)
	a := anim.New(g, b, anim.Config{Duration: 1, CellSize: 50})
	s := a.Animate([]grid.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 3, Col: 1}}, grid.Column)

	s.Step(0.5)
	golden(t).Assert(t, "center_columns_half", []byte(ASCII(b, 2, 1)))

	s.Step(0.5)
	golden(t).Assert(t, "center_columns_done", []byte(ASCII(b, 2, 1)))
}

func TestRasterOnesOnTop(t *testing.T) {
	g := seededGrid(t)
	b := NewBoard(g, 50)
	b.SetPosition(2, 2, b.Position(2, 1))

	r := Raster(b, 1, 1)
	if r[2][1] != 1 {
		t.Errorf("expected the one to be drawn over the zero, got %d", r[2][1])
	}
	if r[2][2] != Empty {
		t.Errorf("expected vacated slot to be empty, got %d", r[2][2])
	}
}
