package logs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module)).Call(func(
		logger Logger,
	) {
		logger.Info("exec", "session", "run-1")
	})
}

func TestJSONFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
		func() Format {
			return FormatJSON
		},
	).Call(func(
		logger Logger,
	) {
		ctx := WithSession(t.Context(), "run-2")
		logger.InfoContext(ctx, "reset")
		var record map[string]any
		line, _, _ := strings.Cut(buf.String(), "\n")
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("%v: %s", err, buf.String())
		}
		if record["msg"] != "reset" || record["logs.session"] != "run-2" {
			t.Fatalf("got %v", record)
		}
	})
}
