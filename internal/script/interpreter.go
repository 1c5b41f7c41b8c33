// Package script parses token scripts, validates them against a catalog of
// operations and executes them one token at a time under a run-lock.
//
// Validation is all-or-nothing: a script with any unknown token runs nothing.
// Execution is not transactional; each token commits its own changes, and a
// failure part-way through leaves the earlier commits in place.
package script

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/san-kum/gridperm/internal/clock"
)

// Catalog reports which tokens are known.
type Catalog interface {
	Has(token string) bool
}

// Starter begins the task bound to a token.
type Starter interface {
	Start(token string) (clock.Stepper, error)
}

// Phase of the interpreter.
type Phase int32

const (
	Idle Phase = iota
	Validating
	Executing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Executing:
		return "executing"
	default:
		return "unknown"
	}
}

type Interpreter struct {
	catalog Catalog
	starter Starter
	lock    *RunLock
	onToken []func(Token)
	logger  *slog.Logger
	phase   atomic.Int32
}

type Option func(*Interpreter)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// WithTokenHook is called before each token starts. It must not start work.
func WithTokenHook(fn func(Token)) Option {
	return func(in *Interpreter) { in.onToken = append(in.onToken, fn) }
}

// WithLock shares an existing run-lock instead of a private one.
func WithLock(l *RunLock) Option {
	return func(in *Interpreter) { in.lock = l }
}

func New(catalog Catalog, starter Starter, opts ...Option) *Interpreter {
	in := &Interpreter{catalog: catalog, starter: starter}
	for _, opt := range opts {
		opt(in)
	}
	if in.lock == nil {
		in.lock = NewRunLock()
	}
	if in.logger == nil {
		in.logger = slog.New(slog.DiscardHandler)
	}
	return in
}

func (in *Interpreter) Lock() *RunLock { return in.lock }

func (in *Interpreter) Phase() Phase { return Phase(in.phase.Load()) }

// Validate checks every token. It has no side effects.
func (in *Interpreter) Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return ErrEmptyScript
	}
	var invalid []string
	seen := make(map[string]bool)
	for _, t := range tokens {
		if in.catalog.Has(t.Text) || seen[t.Text] {
			continue
		}
		seen[t.Text] = true
		invalid = append(invalid, t.Text)
	}
	if len(invalid) > 0 {
		return &ValidationError{Invalid: invalid}
	}
	return nil
}

// Execute validates tokens and takes the run-lock. The returned Execution
// must be stepped to completion; the lock is released when it finishes,
// fails or panics.
func (in *Interpreter) Execute(tokens []Token) (*Execution, error) {
	if !in.phase.CompareAndSwap(int32(Idle), int32(Validating)) {
		return nil, ErrBusy
	}
	if err := in.Validate(tokens); err != nil {
		in.phase.Store(int32(Idle))
		in.logger.Warn("script rejected", "error", err)
		return nil, err
	}

	release, ok := in.lock.TryAcquire()
	if !ok {
		in.phase.Store(int32(Idle))
		in.logger.Debug("script refused", "reason", "busy")
		return nil, ErrBusy
	}
	in.phase.Store(int32(Executing))
	in.logger.Info("script started", "tokens", len(tokens))

	x := &Execution{
		tokens:  append([]Token(nil), tokens...),
		starter: in.starter,
		onToken: in.onToken,
		logger:  in.logger,
	}
	x.release = func() {
		release()
		in.phase.Store(int32(Idle))
	}
	return x, nil
}

// Result summarises a finished run.
type Result struct {
	Tokens []Token
	Ticks  int
}

// Run parses, validates and executes text, driving it on c until it ends.
func (in *Interpreter) Run(text string, c clock.Clock) (Result, error) {
	tokens := Parse(text)
	x, err := in.Execute(tokens)
	if err != nil {
		return Result{Tokens: tokens}, err
	}
	ticks, err := clock.Drive(x, c)
	if err != nil {
		return Result{Tokens: tokens, Ticks: ticks}, fmt.Errorf("script: token %d: %w", x.Failed().Index, err)
	}
	return Result{Tokens: tokens, Ticks: ticks}, nil
}
