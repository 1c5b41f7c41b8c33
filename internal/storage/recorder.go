package storage

import (
	"sync"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

// Sample is one recorded animation step.
type Sample struct {
	Tick      int
	Time      float64
	Token     string
	Progress  float64
	Eased     float64
	Committed bool
}

// Recorder collects animation samples tagged with the running token.
type Recorder struct {
	mu      sync.Mutex
	token   string
	samples []Sample
	commits int
}

func NewRecorder() *Recorder {
	return &Recorder{samples: make([]Sample, 0, 256)}
}

// Begin tags subsequent samples with token.
func (r *Recorder) Begin(token string) {
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
}

func (r *Recorder) OnStep(s anim.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{
		Tick:      len(r.samples),
		Time:      s.Time,
		Token:     r.token,
		Progress:  s.Progress,
		Eased:     s.Eased,
		Committed: s.Committed,
	})
}

func (r *Recorder) OnCommit(axis grid.Axis, pairs []grid.Coord) {
	r.mu.Lock()
	r.commits++
	r.mu.Unlock()
}

// Drain returns the collected samples and commit count and resets the recorder.
func (r *Recorder) Drain() ([]Sample, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	samples, commits := r.samples, r.commits
	r.samples, r.commits, r.token = make([]Sample, 0, 256), 0, ""
	return samples, commits
}
