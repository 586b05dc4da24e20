// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger = newLogger(os.Stderr, log.InfoLevel)

var closer io.Closer

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return l
}

// Configure sets the level and destination. An empty file keeps stderr.
// Calling Configure again closes a previously opened log file.
func Configure(level, file string) error {
	var out io.Writer = os.Stderr
	var c io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out, c = f, f
	}

	if closer != nil {
		closer.Close()
	}
	closer = c
	Logger = newLogger(out, ParseLevel(level))
	return nil
}

// Discard silences all logging. Tests and the TUI's stderr fallback use it.
func Discard() {
	Logger = newLogger(io.Discard, log.FatalLevel)
}

// ParseLevel converts a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg any, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg any, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg any, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg any, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}
