package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualLoop(t *testing.T) {
	loop := NewManualLoop()
	var got []int
	loop.Defer(func() error {
		got = append(got, 1)
		loop.Defer(func() error {
			got = append(got, 3)
			return nil
		})
		return nil
	})
	h := loop.Defer(func() error {
		got = append(got, 2)
		return nil
	})
	h.Cancel()
	if loop.Pending() != 1 {
		t.Fatalf("got %d", loop.Pending())
	}
	if err := loop.Drain(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("got %v", got)
	}

	e := errors.New("foo")
	loop.Defer(func() error {
		return e
	})
	loop.Defer(func() error {
		t.Fatal("should not run after failure")
		return nil
	})
	if err := loop.Drain(); !errors.Is(err, e) {
		t.Fatalf("got %v", err)
	}
}

func TestLoopRun(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithTimeout(t.Context(), time.Second*10)
	defer cancel()

	e := errors.New("done")
	n := 0
	go func() {
		for range 10 {
			loop.Post(func() error {
				n++
				return nil
			})
		}
		loop.Post(func() error {
			return e
		})
	}()

	if err := loop.Run(ctx); !errors.Is(err, e) {
		t.Fatalf("got %v", err)
	}
	if n != 10 {
		t.Fatalf("got %d", n)
	}
}

func TestLoopDrain(t *testing.T) {
	loop := NewLoop()
	var got []int
	loop.Defer(func() error {
		got = append(got, 1)
		loop.Defer(func() error {
			got = append(got, 2)
			return nil
		})
		return nil
	})
	loop.Defer(func() error {
		got = append(got, 3)
		return nil
	}).Cancel()
	if err := loop.Drain(t.Context()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
