package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/taiblock/behaviors"
	"github.com/reusee/taiblock/configs"
	"github.com/reusee/taiblock/debugs"
	"github.com/reusee/taiblock/headless"
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/scheduler"
	"go.starlark.net/starlark"
)

var (
	ErrNoProgram       = errors.New("no program")
	ErrTooManyPrograms = errors.New("give either a document or code, not both")
)

// Plan is one invocation: a program and the host activity to replay against it.
type Plan struct {
	File  string
	Code  string
	Print io.Writer
	Tap   bool
	Steps []Step
}

// Step is host activity, run on the loop between drains.
type Step struct {
	Desc string
	Run  func(host *headless.Host) error
	// Setup steps run in order before the program starts.
	Setup bool
}

// MountStep mounts a component. The host is populated before the program
// runs, so listeners registered at load time find their component.
func MountStep(typ, id string) Step {
	return Step{
		Desc:  "mount " + typ + " " + id,
		Setup: true,
		Run: func(host *headless.Host) error {
			host.Mount(typ, id, nil)
			return nil
		},
	}
}

func EventStep(typ, id, event string) Step {
	return Step{
		Desc: event + " " + typ + " " + id,
		Run: func(host *headless.Host) error {
			return host.Fire(typ, id, event)
		},
	}
}

func KeyStep(key string) Step {
	return Step{
		Desc: "key " + key,
		Run: func(host *headless.Host) error {
			_, err := host.Key(key)
			return err
		},
	}
}

func TimeStep(seconds float64) Step {
	return Step{
		Desc: fmt.Sprintf("time %g", seconds),
		Run: func(host *headless.Host) error {
			host.Player.Advance(seconds)
			return nil
		},
	}
}

type Play func(ctx context.Context, plan Plan) error

func (Module) Play(
	coordinator *behaviors.Coordinator,
	host *headless.Host,
	loop *scheduler.Loop,
	newSpan logs.NewSpan,
	tap debugs.Tap,
) Play {
	return func(ctx context.Context, plan Plan) error {

		run := func(step Step) error {
			newSpan(coordinator.Context(), step.Desc)
			loop.Post(func() error {
				return step.Run(host)
			})
			if err := loop.Drain(ctx); err != nil {
				return logs.WrapSpan(coordinator.Context(), fmt.Errorf("%s: %w", step.Desc, err))
			}
			return nil
		}

		if plan.File != "" && plan.Code != "" {
			return ErrTooManyPrograms
		}
		if plan.File == "" && plan.Code == "" {
			return ErrNoProgram
		}
		for _, step := range plan.Steps {
			if !step.Setup {
				continue
			}
			if err := run(step); err != nil {
				return err
			}
		}

		switch {
		case plan.File != "":
			ws, err := loadDocument(configs.FileSource(plan.File))
			if err != nil {
				return err
			}
			code, err := coordinator.Run(ws)
			if err != nil {
				return err
			}
			if plan.Print != nil {
				if _, err := io.WriteString(plan.Print, code); err != nil {
					return err
				}
			}
		case plan.Code != "":
			if err := coordinator.Exec(plan.Code); err != nil {
				return err
			}
		}
		defer coordinator.Reset()

		if err := loop.Drain(ctx); err != nil {
			return err
		}

		for _, step := range plan.Steps {
			if step.Setup {
				continue
			}
			if err := run(step); err != nil {
				return err
			}
		}

		if plan.Tap {
			variables := starlark.NewDict(0)
			for _, key := range coordinator.Store().Keys() {
				v, _ := coordinator.Store().Get(key)
				if err := variables.SetKey(starlark.String(key), v); err != nil {
					return err
				}
			}
			globals := debugs.SessionGlobals(coordinator.Session().Interpreter().Globals(), map[string]any{
				"variables": variables,
			})
			if err := tap(ctx, "session", globals); err != nil {
				return err
			}
		}

		return nil
	}
}
