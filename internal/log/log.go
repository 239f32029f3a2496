// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log provides the small leveled logging abstraction used for
// non-fatal parser diagnostics, in the shape of the structured
// key/value logger the rest of the stack is built around.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level is a logging severity.
type Level int

// The four recognized levels, in increasing severity order.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every level-specific helper writes through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes formatted lines to an underlying *log.Logger. It is
// concurrency-safe: multiple goroutines may log through the same Helper.
type stdLogger struct {
	mu  sync.Mutex
	out *log.Logger
}

// NewStdLogger returns a Logger that writes "LEVEL key=val key=val" lines
// to w, each prefixed with the standard log package's date and time.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags)}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf("%-5s ", level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		msg += fmt.Sprintf("%v=%v ", keyvals[i], keyvals[i+1])
	}
	l.out.Print(msg)
	return nil
}

// filter wraps a Logger and drops any record below its configured level.
type filter struct {
	next Logger
	min  Level
}

// Option configures a filter constructed by NewFilter.
type Option func(*filter)

// FilterLevel sets the minimum level a filter lets through.
func FilterLevel(min Level) Option {
	return func(f *filter) { f.min = min }
}

// NewFilter wraps next so that records below the configured minimum level
// (LevelInfo by default) are dropped before reaching it.
func NewFilter(next Logger, opts ...Option) Logger {
	f := &filter{next: next, min: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper is the ergonomic façade callers actually log through, exposing
// one formatted method per level instead of the raw Log(level, ...) call.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, "msg", fmt.Sprintf(format, args...))
}

func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, "msg", fmt.Sprintf(format, args...))
}

// NewStderrHelper returns a Helper over a standard logger writing to
// os.Stderr, filtered at LevelWarn — the default a *File uses when the
// caller supplies no Options.Logger.
func NewStderrHelper() *Helper {
	return NewHelper(NewFilter(NewStdLogger(os.Stderr), FilterLevel(LevelWarn)))
}
