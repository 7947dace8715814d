// Package logging provides the loggers used by the binaries: bracketed text
// on one stream for progress messages, JSON on another for errors.
package logging

import (
	"io"
	"log/slog"
)

type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func New(out io.Writer, errOut io.Writer, level slog.Level) Logger {
	return Logger{
		InfoLog:  slog.New(NewHandler(out, level)),
		ErrorLog: slog.New(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: level})),
	}
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}
