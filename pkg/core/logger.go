package core

import (
	"log"
	"os"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...any)
}

// DefaultLogger implements Logger on top of the standard log package
type DefaultLogger struct {
	out *log.Logger
}

// NewDefaultLogger creates a logger writing to stdout. A non-empty prefix is
// rendered as "[prefix] " in front of every line.
func NewDefaultLogger(prefix string) *DefaultLogger {
	if prefix != "" {
		prefix = "[" + prefix + "] "
	}
	return &DefaultLogger{
		out: log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *DefaultLogger) Printf(format string, args ...any) {
	l.out.Printf(format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}
