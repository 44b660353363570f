package frame

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/cellview/internal/logging"
)

// Step is the work done in one frame.
type Step func(now time.Time) error

// Scheduler keeps at most one frame callback pending on its Host. It is
// either Idle (nothing pending) or Running (exactly one callback pending
// between frames).
type Scheduler struct {
	host    Host
	step    Step
	running bool
	handle  ID
	frames  uint64
	err     error
	onFault func(error)
	log     *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithFaultHandler is called once when a frame fails and the loop stops.
func WithFaultHandler(fn func(error)) Option {
	return func(s *Scheduler) { s.onFault = fn }
}

// WithLogger sets the logger used for loop transitions and faults.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an idle scheduler bound to host.
func New(host Host, opts ...Option) *Scheduler {
	s := &Scheduler{host: host, log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the loop with step. It reports false and does nothing if the
// loop is already running.
func (s *Scheduler) Start(step Step) bool {
	if s.running || step == nil {
		return false
	}
	s.step = step
	s.running = true
	s.err = nil
	s.handle = s.host.Request(s.advance)
	s.log.Debug("frame loop started", "handle", s.handle)
	return true
}

// Stop cancels the pending frame. A frame already running completes, but
// does not reschedule. Stopping an idle scheduler is a no-op.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	if s.handle != 0 {
		s.host.Cancel(s.handle)
		s.handle = 0
	}
	s.running = false
	s.log.Debug("frame loop stopped", "frames", s.frames)
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool { return s.running }

// Pending reports whether a frame callback is waiting on the host.
func (s *Scheduler) Pending() bool { return s.handle != 0 }

// Frames returns the number of frames fired since construction.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Err returns the fault that stopped the loop, if any. It is cleared by the
// next successful Start.
func (s *Scheduler) Err() error { return s.err }

func (s *Scheduler) advance(now time.Time) {
	s.handle = 0
	if !s.running {
		return
	}
	s.frames++

	if err := s.run(now); err != nil {
		s.running = false
		fault := &FaultError{Frame: s.frames, Wrapped: err}
		s.err = fault
		s.log.Error("frame loop faulted", "frame", s.frames, "err", err)
		if s.onFault != nil {
			s.onFault(fault)
		}
		return
	}

	// step may have called Stop, or Stop followed by Start.
	if s.running && s.handle == 0 {
		s.handle = s.host.Request(s.advance)
	}
}

func (s *Scheduler) run(now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.step(now)
}
