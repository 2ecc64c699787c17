package main

import (
	"io"
	"log/slog"
	"os"

	console "github.com/phsym/console-slog"
	"golang.org/x/term"
)

// newLogger logs to w with colors when w is a terminal and in logfmt
// otherwise, e.g. when started from .xinitrc with stderr redirected.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(console.NewHandler(w, &console.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
