package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handle cancels a deferred task that has not started.
type Handle interface {
	Cancel()
}

// Deferrer runs tasks after the current one returns. An error returned by a
// task is surfaced to whoever drives the deferrer.
type Deferrer interface {
	Defer(fn func() error) Handle
}

type task struct {
	fn        func() error
	cancelled atomic.Bool
}

func (t *task) Cancel() {
	t.cancelled.Store(true)
}

// ManualLoop queues tasks until the caller runs them.
type ManualLoop struct {
	tasks []*task
}

var _ Deferrer = new(ManualLoop)

func NewManualLoop() *ManualLoop {
	return new(ManualLoop)
}

func (m *ManualLoop) Defer(fn func() error) Handle {
	t := &task{
		fn: fn,
	}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of queued tasks not cancelled.
func (m *ManualLoop) Pending() (n int) {
	for _, t := range m.tasks {
		if !t.cancelled.Load() {
			n++
		}
	}
	return
}

// RunNext runs the next live task and reports whether one ran.
func (m *ManualLoop) RunNext() (bool, error) {
	for len(m.tasks) > 0 {
		t := m.tasks[0]
		m.tasks[0] = nil
		m.tasks = m.tasks[1:]
		if t.cancelled.Load() {
			continue
		}
		return true, t.fn()
	}
	return false, nil
}

// Drain runs tasks until none is left or one fails.
func (m *ManualLoop) Drain() error {
	for {
		ran, err := m.RunNext()
		if err != nil {
			return err
		}
		if !ran {
			return nil
		}
	}
}

// Loop is an event loop confined to the goroutine calling Run or Drain.
// Post and Defer may be called from any goroutine.
type Loop struct {
	mu     sync.Mutex
	tasks  []*task
	signal chan struct{}
}

var _ Deferrer = new(Loop)

func NewLoop() *Loop {
	return &Loop{
		signal: make(chan struct{}, 1),
	}
}

func (l *Loop) Defer(fn func() error) Handle {
	t := &task{
		fn: fn,
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()
	select {
	case l.signal <- struct{}{}:
	default:
	}
	return t
}

// Post queues a host event.
func (l *Loop) Post(fn func() error) {
	l.Defer(fn)
}

func (l *Loop) next() *task {
	l.mu.Lock()
	defer l.mu.Unlock()
	for len(l.tasks) > 0 {
		t := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		if !t.cancelled.Load() {
			return t
		}
	}
	return nil
}

// Run runs tasks until ctx is done or a task fails.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for t := l.next(); t != nil; t = l.next() {
			if err := t.fn(); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.signal:
		}
	}
}

// Drain runs tasks until the queue is empty or a task fails.
func (l *Loop) Drain(ctx context.Context) error {
	for t := l.next(); t != nil; t = l.next() {
		if err := t.fn(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
