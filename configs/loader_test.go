package configs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var testSchema = `
behaviors?: {
	maxStepsPerUnit?: int
	cursor?: string
}
scenarios?: [...string]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var cursor string
	err := loader.AssignFirst("behaviors.cursor", &cursor)
	if err != nil {
		t.Fatal(err)
	}
	if cursor != "pointer" {
		t.Fatalf("got %q", cursor)
	}

	var list []string
	err = loader.AssignFirst("scenarios", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[intro main outro]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderOrder(t *testing.T) {
	loader := NewLoader([]string{"test2.cue", "test.cue"}, testSchema)

	var cursor string
	if err := loader.AssignFirst("behaviors.cursor", &cursor); err != nil {
		t.Fatal(err)
	}
	if cursor != "grab" {
		t.Fatalf("got %v", cursor)
	}

	// only the second source defines it
	var steps int
	if err := loader.AssignFirst("behaviors.maxStepsPerUnit", &steps); err != nil {
		t.Fatal(err)
	}
	if steps != 1000 {
		t.Fatalf("got %v", steps)
	}
}

func TestSourceLoader(t *testing.T) {
	loader := NewSourceLoader([]Source{
		BytesSource("inline.json", []byte(`{"behaviors": {"cursor": "help"}}`)),
	}, testSchema)
	var cursor string
	if err := loader.AssignFirst("behaviors.cursor", &cursor); err != nil {
		t.Fatal(err)
	}
	if cursor != "help" {
		t.Fatalf("got %v", cursor)
	}

	var wrong int
	err := loader.AssignFirst("behaviors.cursor", &wrong)
	if err == nil || !strings.HasPrefix(err.Error(), "inline.json: behaviors.cursor") {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{
		"missing.cue",
	}, testSchema)
	var str string
	if err := loader.AssignFirst("behaviors.cursor", &str); err == nil {
		t.Fatal("should error")
	}
}
