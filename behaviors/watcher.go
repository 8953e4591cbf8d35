package behaviors

import (
	"github.com/reusee/taiblock/reactive"
	"github.com/reusee/taiblock/sandbox"
	"github.com/reusee/taiblock/scheduler"
)

// watcher implements watch_when on the session owner. The condition is
// memoized, so branches run once per transition of its truth value.
type watcher struct {
	rt      *reactive.Runtime
	owner   *reactive.Owner
	session *scheduler.Session
}

var _ sandbox.Watcher = new(watcher)

func (w *watcher) WatchWhen(cond func() (bool, error), then func() error, otherwise func() error) error {
	// errors of the first evaluation fault the calling statement; later ones kill the session
	var initErr error
	initializing := true
	fail := func(err error) {
		if initializing {
			if initErr == nil {
				initErr = err
			}
			return
		}
		w.session.Fail(err)
	}

	if err := w.owner.Run(func() error {
		active := reactive.NewComputed(w.rt, func() bool {
			ok, err := cond()
			if err != nil {
				fail(err)
				return false
			}
			return ok
		})
		reactive.NewEffect(w.rt, func() {
			var err error
			if active.Read() {
				err = then()
			} else if otherwise != nil {
				err = otherwise()
			}
			if err != nil {
				fail(err)
			}
		})
		return nil
	}); err != nil {
		return err
	}

	initializing = false
	return initErr
}
