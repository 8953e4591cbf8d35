package bridges

import (
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/sandbox"
)

// AnyKey matches every key.
const AnyKey = "any"

type Keyboard struct {
	renderer Renderer
	diag     Diagnostics
	logger   logs.Logger

	registrations []keyRegistration
}

type keyRegistration struct {
	surface  Node
	event    string
	listener *Listener
}

var _ sandbox.Keyboard = new(Keyboard)

func NewKeyboard(renderer Renderer, diag Diagnostics, logger logs.Logger) *Keyboard {
	if diag == nil {
		diag = NopDiagnostics
	}
	return &Keyboard{
		renderer: renderer,
		diag:     diag,
		logger:   logger,
	}
}

func (k *Keyboard) AddEventListener(key, event string, callback func() error) {
	surface := k.renderer.InputSurface()
	if surface == nil {
		k.diag.LookupMiss(Miss{
			Kind: MissSurface,
			Name: key,
		})
		return
	}
	listener := &Listener{
		Handle: func(ev *Event) error {
			if key != AnyKey && ev.Key != key {
				return nil
			}
			ev.PreventDefault()
			return callback()
		},
	}
	surface.AddEventListener(event, listener)
	k.registrations = append(k.registrations, keyRegistration{
		surface:  surface,
		event:    event,
		listener: listener,
	})
	k.logger.Debug("key listener", "key", key, "event", event)
}

func (k *Keyboard) Listeners() int {
	return len(k.registrations)
}

// Reset removes every recorded listener.
func (k *Keyboard) Reset() {
	for _, r := range k.registrations {
		r.surface.RemoveEventListener(r.event, r.listener)
	}
	k.registrations = nil
}
