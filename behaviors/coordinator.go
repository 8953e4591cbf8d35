package behaviors

import (
	"context"
	"fmt"

	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/codegen"
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/reactive"
	"github.com/reusee/taiblock/sandbox"
	"github.com/reusee/taiblock/scheduler"
	"go.starlark.net/starlark"
)

// Coordinator compiles and runs block programs against one host, keeping at
// most one session alive and undoing every side effect between runs.
type Coordinator struct {
	rt        *reactive.Runtime
	logger    logs.Logger
	newSpan   logs.NewSpan
	config    Config
	scheduler *scheduler.Scheduler

	components *bridges.Components
	keyboard   *bridges.Keyboard
	mediaTime  *bridges.MediaTime

	// Trace receives the block IDs reported by trace().
	Trace func(blockID string)

	serial  int
	ctx     context.Context
	session *scheduler.Session
	owner   *reactive.Owner
	store   *reactive.Store[starlark.Value]
}

func NewCoordinator(
	rt *reactive.Runtime,
	host bridges.Host,
	deferrer scheduler.Deferrer,
	diag bridges.Diagnostics,
	logger logs.Logger,
	newSpan logs.NewSpan,
	config Config,
) *Coordinator {
	var options []sandbox.Option
	if config.MaxStepsPerUnit > 0 {
		options = append(options, sandbox.WithMaxSteps(uint64(config.MaxStepsPerUnit)))
	}
	c := &Coordinator{
		rt:         rt,
		logger:     logger,
		newSpan:    newSpan,
		config:     config,
		components: bridges.NewComponents(host.Model, host.Renderer, diag, logger),
		keyboard:   bridges.NewKeyboard(host.Renderer, diag, logger),
		mediaTime:  bridges.NewMediaTime(host.Player, diag),
		ctx:        context.Background(),
	}
	c.components.SetCursor(config.cursor())
	options = append(options, sandbox.WithPrint(func(msg string) {
		c.logger.InfoContext(c.ctx, "print", "msg", msg)
	}))
	c.scheduler = scheduler.New(deferrer, logger, options...)

	// errors of session reactions go to the session owner
	rt.OnError(func(err error) {
		logger.Error("reactive", "error", err)
	})

	return c
}

// Generator returns a code generator configured with the statement hooks.
func (c *Coordinator) Generator() *codegen.Generator {
	g := codegen.New()
	g.StatementPrefix = c.config.StatementPrefix
	g.StatementSuffix = c.config.StatementSuffix
	return g
}

// Run compiles ws and executes the program, returning its source.
func (c *Coordinator) Run(ws *blocks.Workspace) (string, error) {
	code, err := c.Generator().WorkspaceToCode(ws)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if err := c.Exec(code); err != nil {
		return code, err
	}
	return code, nil
}

// Exec resets and starts a session running code.
func (c *Coordinator) Exec(code string) error {
	c.Reset()

	c.serial++
	name := fmt.Sprintf("run-%d", c.serial)
	ctx, _ := c.newSpan(logs.WithSession(context.Background(), logs.Session(name)), "exec")
	owner := c.rt.NewOwner()
	store := reactive.NewStore(c.rt, valueEqual)

	session, err := c.scheduler.Run(name, code, func(interp *sandbox.Interpreter, globals starlark.StringDict) error {
		session := c.scheduler.Current()
		owner.OnError(session.Fail)
		return sandbox.Install(interp, globals, sandbox.Capabilities{
			Store:      store,
			Components: c.components,
			Keyboard:   c.keyboard,
			MediaTime:  c.mediaTime,
			Watcher: &watcher{
				rt:      c.rt,
				owner:   owner,
				session: session,
			},
			Trace: func(blockID string) {
				c.logger.DebugContext(ctx, "trace", "block", blockID)
				if c.Trace != nil {
					c.Trace(blockID)
				}
			},
			Schedule: func(fn starlark.Callable, args ...starlark.Value) error {
				return session.AppendCall(fn, args...)
			},
		})
	})
	if err != nil {
		owner.Dispose()
		return logs.WrapSpan(ctx, err)
	}

	c.ctx = ctx
	c.session = session
	c.owner = owner
	c.store = store
	c.logger.InfoContext(ctx, "exec", "units", session.Interpreter().Pending())
	return nil
}

// Reset stops the session and undoes its side effects. It is safe to call
// any number of times, including before the first Exec.
func (c *Coordinator) Reset() {
	c.scheduler.Stop()
	if c.session != nil {
		c.session.Close("reset")
	}
	if c.owner != nil {
		c.owner.Dispose()
	}
	c.components.Reset()
	c.keyboard.Reset()
	if c.session != nil {
		c.logger.InfoContext(c.ctx, "reset")
	}
	c.session = nil
	c.owner = nil
	c.store = nil
	c.ctx = context.Background()
}

// Context carries the session and span of the current session, for logging.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Store returns the variable store of the current session, or nil.
func (c *Coordinator) Store() *reactive.Store[starlark.Value] {
	return c.store
}

// Session returns the current session, or nil.
func (c *Coordinator) Session() *scheduler.Session {
	return c.session
}

// Append extends the current program.
func (c *Coordinator) Append(code string) error {
	if c.session == nil {
		return scheduler.ErrNoSession
	}
	return c.session.Append(code)
}

// Components returns the component bridge; tests inspect its table.
func (c *Coordinator) Components() *bridges.Components {
	return c.components
}

func (c *Coordinator) Keyboard() *bridges.Keyboard {
	return c.keyboard
}

func valueEqual(a, b starlark.Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	eq, err := starlark.Equal(a, b)
	return err == nil && eq
}
