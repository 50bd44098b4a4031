package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LogLevelDebug logs everything including per-run details
	LogLevelDebug LogLevel = iota
	// LogLevelInfo logs run start and completion
	LogLevelInfo
	// LogLevelWarn logs warning messages that don't stop execution
	LogLevelWarn
	// LogLevelError logs only failed runs
	LogLevelError
	// LogLevelOff disables all logging
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel and rejects unknown names
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q (expected debug|info|warn|error|off)", level)
	}
}

// slogLevel maps l onto the slog scale. LogLevelOff maps above every level
// slog emits.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// Logger defines the interface for pluggable logging in the interpreter.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
	// IsDebugEnabled returns true if debug logging is enabled
	IsDebugEnabled() bool
	// IsInfoEnabled returns true if info logging is enabled
	IsInfoEnabled() bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Logger is the pluggable logger implementation
	Logger Logger
}

// DefaultLoggingConfig returns a logging configuration with no-op logger (silent by default)
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Logger: &NoOpLogger{},
	}
}

// NoOpLogger is a logger that does nothing (default behavior)
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) IsDebugEnabled() bool                           { return false }
func (l *NoOpLogger) IsInfoEnabled() bool                            { return false }

// SlogLogger adapts log/slog to Logger. Records fan out to every handler it
// was built with.
type SlogLogger struct {
	logger *slog.Logger
	level  LogLevel
}

// NewSlogLogger creates a logger writing records at or above level to all
// handlers.
func NewSlogLogger(level LogLevel, handlers ...slog.Handler) *SlogLogger {
	return &SlogLogger{
		logger: slog.New(slogmulti.Fanout(handlers...)).With("component", "gopher-tape"),
		level:  level,
	}
}

// NewConsoleLogger creates a text logger writing to w.
func NewConsoleLogger(level LogLevel, w io.Writer) *SlogLogger {
	return NewSlogLogger(level, TextHandler(level, w))
}

// NewJSONLogger creates a structured JSON logger writing to w.
func NewJSONLogger(level LogLevel, w io.Writer) *SlogLogger {
	return NewSlogLogger(level, JSONHandler(level, w))
}

// TextHandler returns a slog text handler filtered at level.
func TextHandler(level LogLevel, w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
}

// JSONHandler returns a slog JSON handler filtered at level.
func JSONHandler(level LogLevel, w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
}

func (l *SlogLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	if !l.IsLevelEnabled(level) {
		return
	}
	l.logger.Log(context.Background(), level.slogLevel(), msg, keysAndValues...)
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelError, msg, keysAndValues...)
}

// IsLevelEnabled returns true if messages at level are written
func (l *SlogLogger) IsLevelEnabled(level LogLevel) bool {
	return level != LogLevelOff && l.level != LogLevelOff && level >= l.level
}

func (l *SlogLogger) IsDebugEnabled() bool { return l.IsLevelEnabled(LogLevelDebug) }
func (l *SlogLogger) IsInfoEnabled() bool  { return l.IsLevelEnabled(LogLevelInfo) }
