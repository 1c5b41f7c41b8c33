package action

import "github.com/san-kum/gridperm/internal/grid"

// DefaultSize is the grid size the default token set is laid out for.
const DefaultSize = 4

func pairs(rc ...int) []grid.Coord {
	out := make([]grid.Coord, 0, len(rc)/2)
	for i := 0; i+1 < len(rc); i += 2 {
		out = append(out, grid.Coord{Row: rc[i], Col: rc[i+1]})
	}
	return out
}

var (
	CenterColumns  = Animate{Axis: grid.Column, Pairs: pairs(0, 1, 1, 1, 2, 1, 3, 1)}
	CenterRows     = Animate{Axis: grid.Row, Pairs: pairs(1, 0, 1, 1, 1, 2, 1, 3)}
	SideColumns    = Animate{Axis: grid.Column, Pairs: pairs(0, 0, 1, 0, 2, 0, 3, 0, 0, 2, 1, 2, 2, 2, 3, 2)}
	SideRows       = Animate{Axis: grid.Row, Pairs: pairs(0, 0, 0, 1, 0, 2, 0, 3, 2, 0, 2, 1, 2, 2, 2, 3)}
	PartialColumns = Animate{Axis: grid.Column, Pairs: pairs(0, 0, 1, 0, 0, 2, 1, 2)}
	PartialRows    = Animate{Axis: grid.Row, Pairs: pairs(0, 2, 0, 3, 2, 2, 2, 3)}
)

// Quadrant patterns used by the reset tokens.
var (
	BottomLeft  = pairs(2, 0, 2, 1, 3, 0, 3, 1)
	BottomRight = pairs(2, 2, 2, 3, 3, 2, 3, 3)
	TopLeft     = pairs(0, 0, 0, 1, 1, 0, 1, 1)
	TopRight    = pairs(0, 2, 0, 3, 1, 2, 1, 3)
)

// Default returns the standard token set for a 4×4 grid. Tokens ending in 0
// act on columns and tokens ending in 1 on rows.
func Default() map[string]Operation {
	return map[string]Operation{
		"H0": CenterColumns,
		"H1": CenterRows,
		"Z0": SideColumns,
		"Z1": SideRows,
		"P0": PartialColumns,
		"P1": PartialRows,

		"X0": Composite{Steps: []string{"H0", "Z0", "H0"}},
		"X1": Composite{Steps: []string{"H1", "Z1", "H1"}},
		"CZ": Composite{Steps: []string{"P0", "P1"}},
		"CX": Composite{Steps: []string{"H0", "P0", "P1", "H0"}},
		"HH": Composite{Steps: []string{"H0", "H1"}},

		"00": Reset{Coords: BottomLeft},
		"01": Reset{Coords: BottomRight},
		"10": Reset{Coords: TopLeft},
		"11": Reset{Coords: TopRight},
	}
}
