package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger with the specified level and format
func Initialize(level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		// Initialize with default settings if not yet initialized
		Initialize("info", "text")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// WithComponent returns a logger with component name attached
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// BackendCall logs an outgoing backend request (debug log for external resources)
func BackendCall(method, path string, args ...any) {
	allArgs := append([]any{"method", method, "path", path}, args...)
	Get().Debug("→ Backend call", allArgs...)
}

// BackendResult logs the outcome of a backend request (debug log for external resources)
func BackendResult(method, path string, status int, err error, args ...any) {
	allArgs := append([]any{"method", method, "path", path, "status", status}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		Get().Debug("← Backend call failed", allArgs...)
	} else {
		Get().Debug("← Backend call succeeded", allArgs...)
	}
}
