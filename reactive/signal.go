package reactive

type Signal[T any] struct {
	*reactionTracker

	rt    *Runtime
	value T
	equal func(a, b T) bool
}

func NewSignal[T comparable](rt *Runtime, initial T) *Signal[T] {
	return NewSignalFunc(rt, initial, func(a, b T) bool {
		return a == b
	})
}

// NewSignalFunc creates a signal whose writes are ignored when equal reports
// the new value equal to the current one.
func NewSignalFunc[T any](rt *Runtime, initial T, equal func(a, b T) bool) *Signal[T] {
	return &Signal[T]{
		reactionTracker: &reactionTracker{},
		rt:              rt,
		value:           initial,
		equal:           equal,
	}
}

func (s *Signal[T]) track(r reaction) {
	s.reactionTracker.track(s, r)
}

func (s *Signal[T]) untrack(r reaction) {
	s.reactionTracker.untrack(s, r)
}

// Read returns the value, tracking the dependency inside a reaction.
func (s *Signal[T]) Read() T {
	s.rt.track(s)
	return s.value
}

// Peek returns the value without tracking.
func (s *Signal[T]) Peek() T {
	return s.value
}

func (s *Signal[T]) Write(v T) {
	if s.equal(s.value, v) {
		return
	}
	s.value = v
	s.rt.react(s.reactionTracker)
}
