package reactive

type disposable interface {
	dispose()
}

// Owner collects effects and computeds created while it is running, so they
// can be disposed together.
type Owner struct {
	rt       *Runtime
	children []disposable
	disposed bool
	onError  func(error)
}

func (r *Runtime) NewOwner() *Owner {
	return &Owner{
		rt: r,
	}
}

func (r *Runtime) adopt(d disposable) *Owner {
	if r.owner != nil {
		r.owner.children = append(r.owner.children, d)
	}
	return r.owner
}

// OnError sets the handler for errors raised by reactions of o. Errors of
// reactions with a handling owner do not reach the runtime handler.
func (o *Owner) OnError(fn func(error)) {
	o.onError = fn
}

// Run calls fn with o as the current owner.
func (o *Owner) Run(fn func() error) error {
	prev := o.rt.owner
	o.rt.owner = o
	defer func() {
		o.rt.owner = prev
	}()
	return fn()
}

// Dispose disposes every child. Later calls are no-ops.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	children := o.children
	o.children = nil
	for _, child := range children {
		child.dispose()
	}
}

func (o *Owner) Disposed() bool {
	return o.disposed
}
