package reactive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		rt := NewRuntime()
		log := []string{}

		count := NewSignal(rt, 0)
		NewEffect(rt, func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))
			rt.OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		count.Write(10)
		count.Write(20)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("stops after dispose", func(t *testing.T) {
		rt := NewRuntime()
		count := NewSignal(rt, 0)
		runs := 0
		e := NewEffect(rt, func() {
			count.Read()
			runs++
		})
		e.Dispose()
		e.Dispose()
		count.Write(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("untracked reads are not dependencies", func(t *testing.T) {
		rt := NewRuntime()
		a := NewSignal(rt, 0)
		b := NewSignal(rt, 0)
		runs := 0
		NewEffect(rt, func() {
			a.Read()
			rt.Untrack(func() {
				b.Read()
			})
			runs++
		})
		b.Write(1)
		assert.Equal(t, 1, runs)
		a.Write(1)
		assert.Equal(t, 2, runs)
	})
}

func TestComputed(t *testing.T) {
	rt := NewRuntime()
	time := NewSignal(rt, 0.0)
	past := NewComputed(rt, func() bool {
		return time.Read() > 5
	})
	var log []bool
	NewEffect(rt, func() {
		log = append(log, past.Read())
	})

	time.Write(4)
	time.Write(6)
	time.Write(7)
	time.Write(3)
	time.Write(8)

	assert.Equal(t, []bool{false, true, false, true}, log)
}

func TestBatch(t *testing.T) {
	rt := NewRuntime()
	a := NewSignal(rt, 0)
	b := NewSignal(rt, 0)
	var sums []int
	NewEffect(rt, func() {
		sums = append(sums, a.Read()+b.Read())
	})
	rt.Batch(func() {
		a.Write(1)
		b.Write(2)
	})
	assert.Equal(t, []int{0, 3}, sums)
}

func TestOwner(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	owner := rt.NewOwner()
	runs := 0
	err := owner.Run(func() error {
		NewEffect(rt, func() {
			count.Read()
			runs++
		})
		return nil
	})
	assert.NoError(t, err)

	count.Write(1)
	assert.Equal(t, 2, runs)

	owner.Dispose()
	owner.Dispose()
	assert.True(t, owner.Disposed())
	count.Write(2)
	assert.Equal(t, 2, runs)
}

func TestCycle(t *testing.T) {
	rt := NewRuntime()
	var got error
	rt.OnError(func(err error) {
		got = err
	})
	count := NewSignal(rt, 0)
	NewEffect(rt, func() {
		count.Write(count.Read() + 1)
	})
	assert.True(t, errors.Is(got, ErrCycle))
}

func TestOwnerErrors(t *testing.T) {
	rt := NewRuntime()
	var fallback error
	rt.OnError(func(err error) {
		fallback = err
	})

	var gotA, gotB error
	a := rt.NewOwner()
	a.OnError(func(err error) {
		gotA = err
	})
	b := rt.NewOwner()
	b.OnError(func(err error) {
		gotB = err
	})

	quiet := NewSignal(rt, 0)
	runs := 0
	assert.NoError(t, b.Run(func() error {
		NewEffect(rt, func() {
			quiet.Read()
			runs++
		})
		return nil
	}))

	count := NewSignal(rt, 0)
	assert.NoError(t, a.Run(func() error {
		NewEffect(rt, func() {
			count.Write(count.Read() + 1)
		})
		return nil
	}))
	assert.True(t, errors.Is(gotA, ErrCycle))
	assert.NoError(t, gotB)
	assert.NoError(t, fallback)

	// b keeps working
	quiet.Write(1)
	assert.Equal(t, 2, runs)

	// reactions without a handling owner reach the runtime handler
	other := NewSignal(rt, 0)
	NewEffect(rt, func() {
		other.Write(other.Read() + 1)
	})
	assert.True(t, errors.Is(fallback, ErrCycle))
}

func TestStore(t *testing.T) {
	rt := NewRuntime()
	store := NewStore(rt, func(a, b any) bool {
		return a == b
	})

	assert.True(t, store.Declare("score", nil))
	assert.False(t, store.Declare("score", 1))
	assert.True(t, store.Has("score"))
	assert.False(t, store.Has("missing"))
	assert.False(t, store.Set("missing", 1))

	var seen []any
	NewEffect(rt, func() {
		v, _ := store.Get("score")
		seen = append(seen, v)
	})
	assert.True(t, store.Set("score", 1))
	store.Set("score", 1)
	assert.Equal(t, []any{nil, 1}, seen)
	assert.Equal(t, []string{"score"}, store.Keys())
}

func TestConfinement(t *testing.T) {
	rt := NewRuntime()
	count := NewSignal(rt, 0)
	count.Write(1)

	done := make(chan any)
	go func() {
		defer func() {
			done <- recover()
		}()
		count.Write(2)
	}()
	p := <-done
	err, ok := p.(error)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, ErrWrongGoroutine))

	count.Write(3)
	assert.Equal(t, 3, count.Peek())
}
