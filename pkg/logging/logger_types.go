package logging

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log severity. Values match zapcore's so conversion is a cast.
type Level int8

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	WarnLevel  = Level(zapcore.WarnLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// String returns the upper-case level name used in log lines.
func (l Level) String() string {
	return zapcore.Level(l).CapitalString()
}

// ParseLevel converts a level name, case-insensitively. Unknown names
// default to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is a typed key-value pair attached to a log line.
type Field = zap.Field

// Logger is the interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger that adds fields to every line
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger writes one JSON object per line through zap. Caller fields are
// nested under a "fields" key.
type JSONLogger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
	// nested is set once the "fields" namespace has been opened on zl
	nested bool
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return &JSONLogger{zl: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.InfoLevel)}
}

// TimedOperation logs an operation together with its latency.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
