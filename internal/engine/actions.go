package engine

import (
	"fmt"

	"github.com/san-kum/gridperm/internal/action"
	"github.com/san-kum/gridperm/internal/config"
	"github.com/san-kum/gridperm/internal/grid"
)

// operations merges the built-in token set with the configured actions.
// The built-ins are only laid out for the default size and are left out
// otherwise; configured tokens replace built-ins of the same name.
func operations(cfg *config.Config) (map[string]action.Operation, error) {
	ops := make(map[string]action.Operation)
	if cfg.Grid.Size == action.DefaultSize {
		for tok, op := range action.Default() {
			ops[tok] = op
		}
	}
	for tok, ac := range cfg.Actions {
		op, err := operation(ac)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", tok, err)
		}
		ops[tok] = op
	}
	return ops, nil
}

func operation(ac config.ActionConfig) (action.Operation, error) {
	kind, err := action.ParseKind(ac.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case action.KindAnimate:
		axis, err := grid.ParseAxis(ac.Axis)
		if err != nil {
			return nil, err
		}
		pairs, err := coords(ac.Pairs)
		if err != nil {
			return nil, err
		}
		return action.Animate{Axis: axis, Pairs: pairs}, nil
	case action.KindComposite:
		return action.Composite{Steps: append([]string(nil), ac.Steps...)}, nil
	default:
		cs, err := coords(ac.Coords)
		if err != nil {
			return nil, err
		}
		return action.Reset{Coords: cs}, nil
	}
}

func coords(rc [][]int) ([]grid.Coord, error) {
	out := make([]grid.Coord, 0, len(rc))
	for i, p := range rc {
		if len(p) != 2 {
			return nil, fmt.Errorf("entry %d must be [row, col], got %v", i, p)
		}
		out = append(out, grid.Coord{Row: p[0], Col: p[1]})
	}
	return out, nil
}
