// Package engine wires the grid, animator, token registry and interpreter
// into one unit built from configuration.
//
// The engine is the only type outer surfaces (CLI, TUI, HTTP) talk to. Every
// step and every read of the grid or board goes through one mutex, so a
// reader in another goroutine never sees a partly applied commit.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/gridperm/internal/action"
	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/config"
	"github.com/san-kum/gridperm/internal/grid"
	"github.com/san-kum/gridperm/internal/render"
	"github.com/san-kum/gridperm/internal/script"
)

// Script outcomes reported to finish hooks.
const (
	ResultOK      = "ok"
	ResultEmpty   = "empty"
	ResultInvalid = "invalid"
	ResultBusy    = "busy"
	ResultFailed  = "failed"
)

type Engine struct {
	mu sync.Mutex

	cfg        *config.Config
	logger     *slog.Logger
	grid       *grid.Grid
	board      *render.Board
	animator   *anim.Animator
	registry   *action.Registry
	dispatcher *action.Dispatcher
	lock       *script.RunLock
	interp     *script.Interpreter

	observers   []anim.Observer
	tokenHooks  []func(string)
	busyHooks   []func(bool)
	finishHooks []func(result string)
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver receives every animation step and commit.
func WithObserver(o anim.Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithTokenHook is called with each token text before it starts.
func WithTokenHook(fn func(token string)) Option {
	return func(e *Engine) { e.tokenHooks = append(e.tokenHooks, fn) }
}

// WithBusyListener is notified when the run-lock is taken and released. It
// runs with the engine mutex held and must not call back into the engine.
func WithBusyListener(fn func(busy bool)) Option {
	return func(e *Engine) { e.busyHooks = append(e.busyHooks, fn) }
}

// WithFinishHook is called once per script attempt with its outcome.
func WithFinishHook(fn func(result string)) Option {
	return func(e *Engine) { e.finishHooks = append(e.finishHooks, fn) }
}

func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	ones, err := coords(cfg.InitialCells())
	if err != nil {
		return nil, fmt.Errorf("initial cells: %w", err)
	}
	e.grid, err = grid.NewWithOnes(cfg.Grid.Size, ones)
	if err != nil {
		return nil, fmt.Errorf("initial cells: %w", err)
	}

	ops, err := operations(cfg)
	if err != nil {
		return nil, err
	}
	e.registry, err = action.NewRegistry(cfg.Grid.Size, ops)
	if err != nil {
		return nil, err
	}

	acfg := anim.Config{
		Duration: cfg.Animation.Duration,
		CellSize: cfg.Grid.CellSize,
		Spacing:  cfg.Grid.Spacing,
	}
	e.board = render.NewBoard(e.grid, acfg.Pitch())
	e.animator = anim.New(e.grid, e.board, acfg)
	for _, o := range e.observers {
		e.animator.AddObserver(o)
	}
	e.dispatcher = action.NewDispatcher(e.registry, e.grid, e.animator, e.board, cfg.Animation.Pause)

	e.lock = script.NewRunLock()
	for _, fn := range e.busyHooks {
		e.lock.OnBusy(fn)
	}
	e.interp = script.New(e.registry, e.dispatcher,
		script.WithLogger(e.logger),
		script.WithLock(e.lock),
		script.WithTokenHook(func(t script.Token) {
			for _, fn := range e.tokenHooks {
				fn(t.Text)
			}
		}),
	)

	e.logger.Debug("engine ready", "size", cfg.Grid.Size, "tokens", len(e.registry.Tokens()))
	return e, nil
}

func (e *Engine) Config() *config.Config { return e.cfg }

func (e *Engine) Registry() *action.Registry { return e.registry }

func (e *Engine) Tokens() []string { return e.registry.Tokens() }

func (e *Engine) Describe(token string) (string, error) { return e.registry.Describe(token) }

func (e *Engine) Busy() bool { return e.lock.Busy() }

// Validate parses text and checks it against the registry without running it.
func (e *Engine) Validate(text string) ([]script.Token, error) {
	tokens := script.Parse(text)
	return tokens, e.interp.Validate(tokens)
}

// Start validates text and takes the run-lock. The caller steps the returned
// execution with [Engine.Step] until it is done.
func (e *Engine) Start(text string) (*script.Execution, error) {
	tokens := script.Parse(text)

	e.mu.Lock()
	x, err := e.interp.Execute(tokens)
	e.mu.Unlock()

	if err != nil {
		e.finish(outcome(err))
		return nil, err
	}
	return x, nil
}

// Step advances x by dt under the engine mutex.
func (e *Engine) Step(x *script.Execution, dt float64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if x.Finished() {
		return true, x.Err()
	}
	done, err := x.Step(dt)
	if done {
		if err != nil {
			e.finish(ResultFailed)
		} else {
			e.finish(ResultOK)
		}
	}
	return done, err
}

// Result summarises a completed run.
type Result struct {
	Tokens  []script.Token
	Ticks   int
	Elapsed time.Duration
	Initial []string
	Final   []string
}

// Run starts text and drives it on c until it ends. The grid rows before and
// after are captured even when a token fails part-way.
func (e *Engine) Run(text string, c clock.Clock) (Result, error) {
	res := Result{Initial: e.Snapshot().Rows()}
	x, err := e.Start(text)
	if err != nil {
		res.Tokens = script.Parse(text)
		res.Final = res.Initial
		return res, err
	}
	res.Tokens = x.Tokens()

	start := time.Now()
	ticks, err := clock.Drive(clock.StepperFunc(func(dt float64) (bool, error) {
		return e.Step(x, dt)
	}), c)
	res.Ticks = ticks
	res.Elapsed = time.Since(start)
	res.Final = e.Snapshot().Rows()
	if err != nil {
		return res, fmt.Errorf("script: token %d: %w", x.Failed().Index, err)
	}
	return res, nil
}

// Snapshot copies the grid.
func (e *Engine) Snapshot() *grid.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Snapshot()
}

// Cells returns the board's cells with their current drawn positions.
func (e *Engine) Cells() []render.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Cells()
}

// Frame renders the board as text, cellW×cellH characters per cell.
func (e *Engine) Frame(cellW, cellH int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return render.ASCII(e.board, cellW, cellH)
}

// Pitch is the distance between cell origins on the board.
func (e *Engine) Pitch() float64 { return e.board.Pitch() }

func (e *Engine) Size() int { return e.grid.Size() }

func (e *Engine) finish(result string) {
	for _, fn := range e.finishHooks {
		fn(result)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, script.ErrEmptyScript):
		return ResultEmpty
	case errors.Is(err, script.ErrInvalidScript):
		return ResultInvalid
	case errors.Is(err, script.ErrBusy):
		return ResultBusy
	default:
		return ResultFailed
	}
}
