package action

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/gridperm/internal/grid"
)

var (
	// ErrUnknownToken indicates a lookup for a token that is not registered.
	ErrUnknownToken = errors.New("action: unknown token")

	// ErrInvalidDefinition indicates a token definition rejected at construction.
	ErrInvalidDefinition = errors.New("action: invalid definition")
)

// Registry is the frozen token → operation table for one grid size.
type Registry struct {
	size   int
	ops    map[string]Operation
	tokens []string
}

// NewRegistry validates defs against a size×size grid. Composite steps must
// name animate or reset tokens of the same table.
func NewRegistry(size int, defs map[string]Operation) (*Registry, error) {
	r := &Registry{
		size: size,
		ops:  make(map[string]Operation, len(defs)),
	}

	for token, op := range defs {
		if token == "" {
			return nil, fmt.Errorf("%w: empty token", ErrInvalidDefinition)
		}
		switch op := op.(type) {
		case Animate:
			if err := grid.CheckPairs(size, op.Pairs, op.Axis); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, token, err)
			}
		case Reset:
			if err := grid.CheckCoords(size, op.Coords); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, token, err)
			}
		case Composite:
			if len(op.Steps) == 0 {
				return nil, fmt.Errorf("%w: %s: composite has no steps", ErrInvalidDefinition, token)
			}
			for _, step := range op.Steps {
				inner, ok := defs[step]
				if !ok {
					return nil, fmt.Errorf("%w: %s: unknown step %q", ErrInvalidDefinition, token, step)
				}
				if inner.Kind() == KindComposite {
					return nil, fmt.Errorf("%w: %s: step %q is itself composite", ErrInvalidDefinition, token, step)
				}
			}
		case nil:
			return nil, fmt.Errorf("%w: %s: nil operation", ErrInvalidDefinition, token)
		}
		r.ops[token] = op
		r.tokens = append(r.tokens, token)
	}

	sort.Strings(r.tokens)
	return r, nil
}

func (r *Registry) Size() int { return r.size }

func (r *Registry) Lookup(token string) (Operation, bool) {
	op, ok := r.ops[token]
	return op, ok
}

func (r *Registry) Has(token string) bool {
	_, ok := r.ops[token]
	return ok
}

// Tokens lists registered tokens in sorted order.
func (r *Registry) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

func (r *Registry) Describe(token string) (string, error) {
	op, ok := r.ops[token]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownToken, token)
	}
	return Describe(op), nil
}
