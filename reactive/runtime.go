package reactive

import (
	"errors"
	"fmt"
	"slices"

	"github.com/petermattis/goid"
)

// Runtime owns the tracking context and the pending reaction queues.
// A Runtime is confined to one goroutine.
type Runtime struct {
	active   reaction
	owner    *Owner
	batching int
	flushing bool

	computeds []reaction
	effects   []reaction
	queued    map[reaction]bool

	onError func(error)

	goroutine int64
}

var (
	ErrCycle          = errors.New("reactive: update cycle")
	ErrWrongGoroutine = errors.New("reactive: runtime used from another goroutine")
)

const maxFlushIterations = 100_000

func NewRuntime() *Runtime {
	return &Runtime{
		queued: make(map[reaction]bool),
	}
}

// OnError sets the handler for errors raised while flushing that no owner
// handles. Without a handler such errors panic.
func (r *Runtime) OnError(fn func(error)) {
	r.onError = fn
}

// fail reports err to the live owners of involved that have a handler, or to
// the runtime handler if there is none.
func (r *Runtime) fail(err error, involved []reaction) {
	seen := make(map[*Owner]bool)
	handled := false
	for _, re := range involved {
		o := re.ownedBy()
		if o == nil || seen[o] {
			continue
		}
		seen[o] = true
		if o.onError != nil && !o.disposed {
			o.onError(err)
			handled = true
		}
	}
	if handled {
		return
	}
	if r.onError == nil {
		panic(err)
	}
	r.onError(err)
}

func (r *Runtime) track(o observable) {
	if r.active != nil {
		o.track(r.active)
	}
}

// confine binds the runtime to the goroutine of its first write.
func (r *Runtime) confine() {
	gid := goid.Get()
	if r.goroutine == 0 {
		r.goroutine = gid
		return
	}
	if r.goroutine != gid {
		panic(fmt.Errorf("%w: bound to %d, called from %d", ErrWrongGoroutine, r.goroutine, gid))
	}
}

func (r *Runtime) react(t *reactionTracker) {
	r.confine()
	for _, re := range slices.Clone(t.reactions) {
		r.enqueue(re)
	}
	if r.batching == 0 {
		r.flush()
	}
}

func (r *Runtime) enqueue(re reaction) {
	if r.queued[re] {
		return
	}
	r.queued[re] = true
	if _, ok := re.(interface{ isComputed() }); ok {
		r.computeds = append(r.computeds, re)
	} else {
		r.effects = append(r.effects, re)
	}
}

func (r *Runtime) flush() {
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() {
		r.flushing = false
	}()

	for n := 0; ; n++ {
		var re reaction
		switch {
		case len(r.computeds) > 0:
			re = r.computeds[0]
			r.computeds = r.computeds[1:]
		case len(r.effects) > 0:
			re = r.effects[0]
			r.effects = r.effects[1:]
		default:
			return
		}
		if n >= maxFlushIterations {
			involved := append([]reaction{re}, r.computeds...)
			involved = append(involved, r.effects...)
			r.computeds = nil
			r.effects = nil
			clear(r.queued)
			r.fail(ErrCycle, involved)
			return
		}
		delete(r.queued, re)
		re.execute()
	}
}

// run executes fn with re as the tracking reaction.
func (r *Runtime) run(re reaction, fn func()) {
	prev := r.active
	r.active = re
	defer func() {
		r.active = prev
	}()
	fn()
}

// Batch defers reactions triggered inside fn until fn returns.
func (r *Runtime) Batch(fn func()) {
	r.batching++
	defer func() {
		r.batching--
		if r.batching == 0 {
			r.flush()
		}
	}()
	fn()
}

// Untrack runs fn without recording dependencies for the active reaction.
func (r *Runtime) Untrack(fn func()) {
	r.run(nil, fn)
}
