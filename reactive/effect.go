package reactive

// Effect re-runs its function whenever a value read during the previous run
// changes, until disposed.
type Effect struct {
	*dependencyTracker

	rt       *Runtime
	owner    *Owner
	fn       func()
	cleanup  func()
	disposed bool
}

// NewEffect creates an effect, runs it once, and attaches it to the current owner.
func NewEffect(rt *Runtime, fn func()) *Effect {
	e := &Effect{
		dependencyTracker: &dependencyTracker{},
		rt:                rt,
		fn:                fn,
	}
	e.owner = rt.adopt(e)
	e.execute()
	return e
}

func (e *Effect) clean() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dependencyTracker.clear(e)
}

func (e *Effect) execute() {
	if e.disposed {
		return
	}
	e.clean()
	e.rt.run(e, e.fn)
}

// OnCleanup registers fn to run before the next execution or on disposal.
func (e *Effect) OnCleanup(fn func()) {
	prev := e.cleanup
	e.cleanup = func() {
		if prev != nil {
			prev()
		}
		fn()
	}
}

func (e *Effect) ownedBy() *Owner {
	return e.owner
}

func (e *Effect) dispose() {
	e.Dispose()
}

func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.clean()
}

// OnCleanup registers fn on the effect currently running, if any.
func (r *Runtime) OnCleanup(fn func()) {
	if e, ok := r.active.(*Effect); ok {
		e.OnCleanup(fn)
	}
}
