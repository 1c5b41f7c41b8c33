package anim

import "github.com/san-kum/gridperm/internal/grid"

type Animator struct {
	grid      *grid.Grid
	renderer  Renderer
	cfg       Config
	observers []Observer
}

func New(g *grid.Grid, r Renderer, cfg Config) *Animator {
	return &Animator{
		grid:      g,
		renderer:  r,
		cfg:       cfg,
		observers: make([]Observer, 0),
	}
}

func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

func (a *Animator) Config() Config { return a.cfg }

type track struct {
	lead, trail           grid.Coord
	leadStart, trailStart Point
}

// Session is one in-flight interpolation of a swap batch.
type Session struct {
	a        *Animator
	axis     grid.Axis
	pairs    []grid.Coord
	tracks   []track
	distance float64
	elapsed  float64
	progress float64
	eased    float64
	state    State
	err      error
}

// Animate starts a session for pairs along axis. Start positions are
// captured now; pairs are trusted to be in range. An empty batch yields a
// session that is already done and never touches the grid.
func (a *Animator) Animate(pairs []grid.Coord, axis grid.Axis) *Session {
	s := &Session{
		a:        a,
		axis:     axis,
		pairs:    append([]grid.Coord(nil), pairs...),
		distance: a.cfg.Pitch(),
	}
	if len(pairs) == 0 {
		s.progress, s.eased, s.state = 1, 1, Done
		return s
	}

	s.tracks = make([]track, len(pairs))
	for i, p := range pairs {
		n := axis.Neighbor(p)
		s.tracks[i] = track{
			lead:       p,
			trail:      n,
			leadStart:  a.renderer.Position(p.Row, p.Col),
			trailStart: a.renderer.Position(n.Row, n.Col),
		}
	}
	s.state = Running
	return s
}

// Step advances progress by dt/duration and reports whether the session is done.
func (s *Session) Step(dt float64) bool {
	if s.state == Done {
		return true
	}
	if dt > 0 {
		s.elapsed += dt
		if s.a.cfg.Duration > 0 {
			s.progress += dt / s.a.cfg.Duration
		} else {
			s.progress = 1
		}
	}

	if s.progress < 1 {
		s.eased = Ease(s.progress)
		s.place(s.eased)
		s.notify(false)
		return false
	}

	s.progress, s.eased = 1, 1
	s.state = Committing
	s.commit()
	s.state = Done
	return true
}

func (s *Session) place(e float64) {
	offset := s.distance * e
	r := s.a.renderer
	for _, t := range s.tracks {
		lead, trail := t.leadStart, t.trailStart
		if s.axis == grid.Row {
			lead.Y += offset
			trail.Y -= offset
		} else {
			lead.X += offset
			trail.X -= offset
		}
		r.SetPosition(t.lead.Row, t.lead.Col, lead)
		r.SetPosition(t.trail.Row, t.trail.Col, trail)
	}
}

func (s *Session) commit() {
	if err := s.a.grid.SwapPairs(s.pairs, s.axis); err != nil {
		s.err = err
		s.a.renderer.Redraw(s.a.grid)
		return
	}
	s.a.renderer.Redraw(s.a.grid)
	for _, o := range s.a.observers {
		o.OnCommit(s.axis, s.pairs)
	}
	s.notify(true)
}

func (s *Session) notify(committed bool) {
	if len(s.a.observers) == 0 {
		return
	}
	sample := Sample{
		Axis:      s.axis,
		Time:      s.elapsed,
		Progress:  s.progress,
		Eased:     s.eased,
		Committed: committed,
	}
	for _, o := range s.a.observers {
		o.OnStep(sample)
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Progress() float64 { return s.progress }
func (s *Session) Eased() float64 { return s.eased }
func (s *Session) Axis() grid.Axis { return s.axis }
func (s *Session) Pairs() []grid.Coord { return s.pairs }

// Err is set if the grid rejected the commit; the grid is then unchanged.
func (s *Session) Err() error { return s.err }
