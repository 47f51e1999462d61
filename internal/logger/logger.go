// Package logger writes leveled, structured logs to a file so that the
// terminal stays free for the TUI.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general operational information
	LevelInfo
	// LevelWarn is for warning conditions
	LevelWarn
	// LevelError is for error conditions
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	logPath      string
	initDone     bool
	currentLevel LogLevel = LevelInfo
)

// DefaultLogPath is the log file used when Init was never called.
const DefaultLogPath = "/tmp/nexara-debug.log"

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init opens path as the log file. Calling it after the logger is already
// initialized is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logPath = path
	logFile = f
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func ensureInitLocked() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Don't retry on every call.
		initDone = true
	}
}

func logWithLevel(level slog.Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	if slogLogger == nil || !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message to the log file
func Debug(format string, args ...interface{}) {
	logWithLevel(slog.LevelDebug, format, args...)
}

// Info writes an info message to the log file
func Info(format string, args ...interface{}) {
	logWithLevel(slog.LevelInfo, format, args...)
}

// Warn writes a warning message to the log file
func Warn(format string, args ...interface{}) {
	logWithLevel(slog.LevelWarn, format, args...)
}

// Error writes an error message to the log file
func Error(format string, args ...interface{}) {
	logWithLevel(slog.LevelError, format, args...)
}

// Path returns the path of the active log file, or "" before initialization.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = ""
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file. Returns the number of files removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

// WithComponent returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.WithComponent("backend")
//	log.Info("upload finished", "file", name, "status", code)
func WithComponent(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	if slogLogger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slogLogger.With(slog.String("component", component))
}
