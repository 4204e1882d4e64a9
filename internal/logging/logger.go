// Package logging provides a small leveled logging abstraction. It is backed
// by the standard log package; components take a Logger so tests can inject
// a capture or the nop implementation.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level represents a log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
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

// Logger is the interface components log through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// SetLevel sets the minimum log level.
	SetLevel(level Level)
}

// stdLogger implements Logger using the standard library log package.
type stdLogger struct {
	logger *log.Logger
	level  Level
	mu     sync.RWMutex
}

// New creates a logger writing to stderr at Info level.
func New() Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a logger with the specified output.
func NewWithOutput(w io.Writer) Logger {
	return &stdLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  LevelInfo,
	}
}

func (l *stdLogger) log(level Level, msg string, args ...interface{}) {
	l.mu.RLock()
	min := l.level
	l.mu.RUnlock()
	if level < min {
		return
	}

	formatted := msg
	if len(args) > 0 {
		formatted = fmt.Sprintf(msg, args...)
	}
	l.logger.Printf("[%s] %s", level.String(), formatted)
}

func (l *stdLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *stdLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *stdLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *stdLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

func (l *stdLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// NopLogger is a logger that discards all output.
type NopLogger struct{}

func (NopLogger) Debug(msg string, args ...interface{}) {}
func (NopLogger) Info(msg string, args ...interface{})  {}
func (NopLogger) Warn(msg string, args ...interface{})  {}
func (NopLogger) Error(msg string, args ...interface{}) {}
func (NopLogger) SetLevel(level Level)                  {}
