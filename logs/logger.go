package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/taiblock/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

// Format selects the encoding of terminal logs.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var format = FormatText

func init() {
	for name, l := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cmds.Define("-log-"+name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+name))
	}
	cmds.Define("-log-json", cmds.Func(func() {
		format = FormatJSON
	}).Desc("log as json lines"))
}

type Logger = *slog.Logger

func (Module) Format() Format {
	return format
}

func (Module) Logger(
	writer Writer,
	format Format,
) Logger {
	var handlers []slog.Handler

	isSystemdService := false
	cgroupPath, err := getCgroupPath()
	if err == nil {
		isSystemdService = strings.HasSuffix(
			path.Dir(cgroupPath),
			".service",
		)
	}

	// local
	var terminalHandler slog.Handler
	if !isSystemdService {
		options := &slog.HandlerOptions{
			Level: level,
		}
		switch format {
		case FormatJSON:
			terminalHandler = slog.NewJSONHandler(writer, options)
		default:
			terminalHandler = slog.NewTextHandler(writer, options)
		}
		handlers = append(handlers, terminalHandler)
	}

	// systemd journal
	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		if terminalHandler != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		}
	} else {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}
