package doodle

import (
	"errors"
	"sync/atomic"
)

// FrameFunc is called once per frame with the elapsed time in seconds.
// Returning ErrStopLoop stops the loop without error; any other error stops
// the scene and is returned from Run.
type FrameFunc func(dt float64) error

// ErrStopLoop stops the loop that returned it.
var ErrStopLoop = errors.New("doodle: stop loop")

// Loop drives a FrameFunc. A loop only advances while running; Stop may be
// called from any goroutine and takes effect before the next step.
type Loop struct {
	fn      FrameFunc
	running atomic.Bool
	frames  uint64
	elapsed float64
}

// NewLoop creates a stopped loop around fn.
func NewLoop(fn FrameFunc) *Loop {
	if fn == nil {
		panic("doodle: nil frame func")
	}
	return &Loop{fn: fn}
}

// Start resumes stepping.
func (l *Loop) Start() { l.running.Store(true) }

// Stop pauses stepping. The loop can be started again.
func (l *Loop) Stop() { l.running.Store(false) }

// Running reports whether the loop is stepping.
func (l *Loop) Running() bool { return l.running.Load() }

// Frames returns how many times the callback has run.
func (l *Loop) Frames() uint64 { return l.frames }

// Elapsed returns the total dt passed to the callback, in seconds.
func (l *Loop) Elapsed() float64 { return l.elapsed }

// Step runs the callback once if the loop is running.
func (l *Loop) Step(dt float64) error {
	if !l.running.Load() {
		return nil
	}
	l.frames++
	l.elapsed += dt
	err := l.fn(dt)
	if errors.Is(err, ErrStopLoop) {
		l.Stop()
		return nil
	}
	return err
}

// Animate creates a running loop owned by the scene. Scene loops step in
// creation order on every Update, after input has been dispatched.
func (s *Scene) Animate(fn FrameFunc) *Loop {
	l := NewLoop(fn)
	l.Start()
	s.loops = append(s.loops, l)
	return l
}

// Loops returns the scene's loops. The returned slice MUST NOT be mutated.
func (s *Scene) Loops() []*Loop {
	return s.loops
}
