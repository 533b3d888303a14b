package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// logger discards everything until InitLogger runs, so tests stay quiet.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ResolveLogLevel accepts slog level names in any case, with an optional
// offset such as "debug+2".
func ResolveLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
	return l, nil
}

func InitLogger(level string) error {
	return initLoggerTo(os.Stderr, level)
}

func initLoggerTo(w io.Writer, level string) error {
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelDebug,
	})
	logger = slog.New(handler).With("app", "utk-level-editor")
	return nil
}
