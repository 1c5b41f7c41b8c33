package script

import (
	"sync"
	"sync/atomic"
)

// RunLock is the process-wide busy flag. While held, trigger surfaces must
// refuse to start new work.
type RunLock struct {
	busy atomic.Bool

	mu        sync.Mutex
	listeners []func(busy bool)
}

func NewRunLock() *RunLock { return &RunLock{} }

// OnBusy registers fn to be told whenever the lock is taken or released.
func (l *RunLock) OnBusy(fn func(busy bool)) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

func (l *RunLock) Busy() bool { return l.busy.Load() }

// TryAcquire takes the lock without waiting. The returned release is safe to
// call more than once.
func (l *RunLock) TryAcquire() (release func(), ok bool) {
	if !l.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	l.notify(true)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.busy.Store(false)
			l.notify(false)
		})
	}, true
}

func (l *RunLock) notify(busy bool) {
	l.mu.Lock()
	listeners := append([]func(bool){}, l.listeners...)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(busy)
	}
}
