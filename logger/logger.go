// Package logger provides a small leveled logger in front of a pluggable
// Sink abstraction. Sinks decide where formatted lines go (an io.Writer, an
// in-memory buffer, an async queue); the Logger decides whether a line is
// emitted at all.
package logger

import "fmt"

// Level is a log severity. Messages below the logger's configured level are
// discarded.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal

	// LevelOff suppresses everything, including Fatal output (the panic
	// still happens).
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger formats messages and forwards them to its sink. A nil *Logger is
// valid and discards everything except the Fatalf panic, so callers can keep
// an optional logger without nil checks.
type Logger struct {
	sink  Sink
	level Level
}

// New creates a logger emitting to sink at the given minimum level.
func New(sink Sink, level Level) *Logger {
	if sink == nil {
		panic("logger: nil sink")
	}
	return &Logger{sink: sink, level: level}
}

// Debugf logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs at LevelInfo.
func (l *Logger) Infof(format string, args ...any) {
	l.logf(LevelInfo, format, args...)
}

// Warningf logs at LevelWarning.
func (l *Logger) Warningf(format string, args ...any) {
	l.logf(LevelWarning, format, args...)
}

// Errorf logs at LevelError.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
}

// Fatalf logs at LevelFatal and then panics with the formatted message.
// Fatal conditions are programming errors; they are never recoverable log
// noise.
func (l *Logger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.logf(LevelFatal, "%s", msg)
	panic("logger: fatal: " + msg)
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	l.sink.Log(fmt.Sprintf("[%s] ", level) + fmt.Sprintf(format, args...))
}
