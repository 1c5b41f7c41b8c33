package script

import (
	"log/slog"

	"github.com/san-kum/gridperm/internal/clock"
)

// Execution runs validated tokens strictly one after another. Token N starts
// on the frame after token N-1 has fully resolved.
type Execution struct {
	tokens  []Token
	starter Starter
	onToken []func(Token)
	logger  *slog.Logger
	release func()

	next     int
	cur      clock.Stepper
	current  Token
	running  bool
	finished bool
	failed   Token
	err      error
}

// Step advances the current token by dt.
func (x *Execution) Step(dt float64) (done bool, err error) {
	if x.finished {
		return true, x.err
	}
	defer func() {
		if r := recover(); r != nil {
			x.finish(nil)
			panic(r)
		}
	}()

	if x.cur == nil {
		tok := x.tokens[x.next]
		x.next++
		x.current, x.running = tok, true
		for _, fn := range x.onToken {
			fn(tok)
		}
		x.logger.Debug("token started", "token", tok.Text, "index", tok.Index)

		s, err := x.starter.Start(tok.Text)
		if err != nil {
			return x.fail(tok, err)
		}
		x.cur = s
	}

	done, err = x.cur.Step(dt)
	if err != nil {
		return x.fail(x.current, err)
	}
	if !done {
		return false, nil
	}

	x.cur = nil
	if x.next >= len(x.tokens) {
		x.finish(nil)
		x.logger.Info("script finished", "tokens", len(x.tokens))
		return true, nil
	}
	return false, nil
}

func (x *Execution) fail(tok Token, err error) (bool, error) {
	x.failed = tok
	x.finish(err)
	x.logger.Error("script aborted", "token", tok.Text, "index", tok.Index, "error", err)
	return true, err
}

func (x *Execution) finish(err error) {
	x.finished, x.running, x.err, x.cur = true, false, err, nil
	x.release()
}

// Current is the token being run, if any.
func (x *Execution) Current() (Token, bool) {
	return x.current, x.running
}

func (x *Execution) Tokens() []Token { return x.tokens }

func (x *Execution) Finished() bool { return x.finished }

func (x *Execution) Err() error { return x.err }

// Failed is the token that aborted the run.
func (x *Execution) Failed() Token { return x.failed }
