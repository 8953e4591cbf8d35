package reactive

// Computed is a memoized derivation. Dependents are notified only when the
// derived value changes.
type Computed[T any] struct {
	*reactionTracker
	*dependencyTracker

	rt          *Runtime
	owner       *Owner
	fn          func() T
	value       T
	equal       func(a, b T) bool
	initialized bool
	disposed    bool
}

func NewComputed[T comparable](rt *Runtime, fn func() T) *Computed[T] {
	return NewComputedFunc(rt, fn, func(a, b T) bool {
		return a == b
	})
}

func NewComputedFunc[T any](rt *Runtime, fn func() T, equal func(a, b T) bool) *Computed[T] {
	c := &Computed[T]{
		reactionTracker:   &reactionTracker{},
		dependencyTracker: &dependencyTracker{},
		rt:                rt,
		fn:                fn,
		equal:             equal,
	}
	c.owner = rt.adopt(c)
	c.execute()
	return c
}

func (c *Computed[T]) isComputed() {}

func (c *Computed[T]) ownedBy() *Owner {
	return c.owner
}

func (c *Computed[T]) track(r reaction) {
	c.reactionTracker.track(c, r)
}

func (c *Computed[T]) untrack(r reaction) {
	c.reactionTracker.untrack(c, r)
}

func (c *Computed[T]) execute() {
	if c.disposed {
		return
	}
	c.dependencyTracker.clear(c)
	var v T
	c.rt.run(c, func() {
		v = c.fn()
	})
	if c.initialized && c.equal(c.value, v) {
		return
	}
	first := !c.initialized
	c.value = v
	c.initialized = true
	if !first {
		c.rt.react(c.reactionTracker)
	}
}

func (c *Computed[T]) Read() T {
	c.rt.track(c)
	return c.value
}

func (c *Computed[T]) dispose() {
	c.Dispose()
}

func (c *Computed[T]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.dependencyTracker.clear(c)
}
