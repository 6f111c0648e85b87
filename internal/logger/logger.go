// Package logger wraps zerolog for the API process and its request
// middleware.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Logger struct {
	zerolog.Logger
}

// New returns a JSON logger writing to stdout. Development builds get a
// human-readable console writer instead.
func New(appEnv string) *Logger {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if appEnv != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
		level = zerolog.DebugLevel
	}
	return NewWithWriter(out, level)
}

func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	l := zerolog.New(w).Level(level).With().
		Str("service", "estate-listings").
		Timestamp().
		Logger()
	return &Logger{l}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext stores l in ctx so that FromContext can find it later.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger if
// none was attached.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*zerolog.Ctx(ctx)}
}
