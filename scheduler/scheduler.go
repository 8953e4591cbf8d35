package scheduler

import (
	"errors"
	"fmt"

	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/sandbox"
	"go.starlark.net/starlark"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrSessionDead  = errors.New("session dead")
	ErrStaleSession = errors.New("stale session")
)

type Status int

const (
	Idle Status = iota
	Running
	Stopped
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Scheduler steps at most one current session, one unit per deferred tick.
type Scheduler struct {
	deferrer Deferrer
	logger   logs.Logger
	options  []sandbox.Option
	session  *Session
	serial   int
}

func New(deferrer Deferrer, logger logs.Logger, options ...sandbox.Option) *Scheduler {
	return &Scheduler{
		deferrer: deferrer,
		logger:   logger,
		options:  options,
	}
}

// Session is one interpreter run.
type Session struct {
	scheduler *Scheduler
	interp    *sandbox.Interpreter
	status    Status
	pending   Handle
	err       error
	closed    bool
}

func (s *Session) Status() Status {
	return s.status
}

// Err returns the fault that killed the session, if any.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) Interpreter() *sandbox.Interpreter {
	return s.interp
}

// Run stops the current session and starts a new one for code.
// init runs synchronously before the first tick is scheduled.
func (s *Scheduler) Run(name string, code string, init sandbox.InitFunc) (*Session, error) {
	s.Stop()
	s.serial++
	if name == "" {
		name = fmt.Sprintf("session-%d", s.serial)
	}
	sess := &Session{
		scheduler: s,
	}
	// the session is current while init runs, so capabilities may bind to it
	s.session = sess
	interp, err := sandbox.New(name, code, func(interp *sandbox.Interpreter, globals starlark.StringDict) error {
		sess.interp = interp
		if init == nil {
			return nil
		}
		return init(interp, globals)
	}, s.options...)
	if err != nil {
		s.session = nil
		return nil, err
	}
	sess.interp = interp
	s.logger.Debug("session start", "name", name, "units", interp.Pending())
	sess.start()
	return sess, nil
}

// Current returns the current session or nil.
func (s *Scheduler) Current() *Session {
	return s.session
}

// Stop stops the current session. It is a no-op without a running session.
func (s *Scheduler) Stop() {
	if s.session == nil {
		return
	}
	s.session.stop()
}

func (s *Scheduler) Append(code string) error {
	if s.session == nil {
		return ErrNoSession
	}
	return s.session.Append(code)
}

func (s *Scheduler) AppendCall(fn starlark.Callable, args ...starlark.Value) error {
	if s.session == nil {
		return ErrNoSession
	}
	return s.session.AppendCall(fn, args...)
}

func (s *Session) stop() {
	s.status = Stopped
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

func (s *Session) start() {
	s.status = Running
	s.schedule()
}

func (s *Session) schedule() {
	s.pending = s.scheduler.deferrer.Defer(func() error {
		return s.tick()
	})
}

func (s *Session) live() bool {
	return s.scheduler.session == s && s.status == Running
}

// tick runs one unit. A tick fired after stop or after the session was
// replaced does nothing.
func (s *Session) tick() error {
	if !s.live() {
		return nil
	}
	s.pending = nil
	more, err := s.interp.Step()
	if err != nil {
		s.status = Stopped
		s.err = err
		s.scheduler.logger.Debug("session fault", "name", s.interp.Name(), "error", err)
		return err
	}
	if !s.live() {
		return nil
	}
	if more {
		s.schedule()
	} else {
		s.status = Idle
	}
	return nil
}

func (s *Session) check() error {
	if s.scheduler.session != s {
		return ErrStaleSession
	}
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrSessionDead, s.err)
	}
	if s.closed {
		return ErrSessionDead
	}
	return nil
}

func (s *Session) resume() {
	if s.status != Running {
		s.start()
	}
}

// Append queues more source and restarts stepping if it had finished or stopped.
func (s *Session) Append(code string) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.interp.Append(code); err != nil {
		return err
	}
	s.resume()
	return nil
}

// AppendCall queues a call of fn and restarts stepping if it had finished or stopped.
func (s *Session) AppendCall(fn starlark.Callable, args ...starlark.Value) error {
	if err := s.check(); err != nil {
		return err
	}
	s.interp.AppendCall(fn, args...)
	s.resume()
	return nil
}

// Fail kills the session with err and surfaces err through the deferrer.
func (s *Session) Fail(err error) {
	if s.err != nil {
		return
	}
	s.stop()
	s.err = err
	s.scheduler.deferrer.Defer(func() error {
		return err
	})
}

// Close stops the session and cancels its interpreter. Closed sessions reject appends.
func (s *Session) Close(reason string) {
	s.stop()
	s.closed = true
	if s.interp != nil {
		s.interp.Cancel(reason)
	}
}
