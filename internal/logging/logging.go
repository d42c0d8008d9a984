// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the Logger used by every iga component, with a
// console implementation for the CLI and a null implementation for tests.
package logging

import (
	"fmt"
	"io"
	"sync"
)

// Logger receives progress and diagnostic messages. Recoverable problems
// (missing sources, failed lookups, unparseable values) go to Warn.
type Logger interface {
	Verbose(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// ConsoleLogger writes log lines to an io.Writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	w       io.Writer
	verbose bool
	prefix  string
	mu      *sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to w.
// If verbose is false, Verbose calls are no-ops.
func NewConsoleLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{w: w, verbose: verbose, mu: &sync.Mutex{}}
}

// With returns a logger that shares the writer and lock of l and prefixes
// every line with tag in brackets.
func (l *ConsoleLogger) With(tag string) *ConsoleLogger {
	c := *l
	c.prefix = l.prefix + "[" + tag + "] "
	return &c
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...any) { l.write("", format, args) }

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...any) { l.write("[WARN] ", format, args) }

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...any) { l.write("[ERROR] ", format, args) }

func (l *ConsoleLogger) write(level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprint(l.w, level+l.prefix+msg+"\n")
}

// NullLogger discards everything.
type NullLogger struct{}

func (NullLogger) Verbose(string, ...any) {}
func (NullLogger) Info(string, ...any)    {}
func (NullLogger) Warn(string, ...any)    {}
func (NullLogger) Error(string, ...any)   {}

// OrNull returns l, or a NullLogger when l is nil.
func OrNull(l Logger) Logger {
	if l == nil {
		return NullLogger{}
	}
	return l
}
