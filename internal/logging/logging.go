// Package logging owns popcorn's file logger. The terminal belongs to the
// TUI, so everything goes to <log_dir>/popcorn.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the log file created inside the configured log directory.
const FileName = "popcorn.log"

var (
	mu      sync.RWMutex
	logger  *log.Logger
	logFile *os.File
	logPath string
)

// Init opens (or creates) the log file in dir and installs the package logger.
// level is one of debug, info, warn, error; anything else means info.
func Init(dir, level string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	logPath = path
	logger = newLogger(file, level)
	return nil
}

// SetOutput installs a logger writing to w. Used by tests and by callers that
// want logs somewhere other than a file.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, level)
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
		Prefix:          "popcorn",
	})
}

// Path returns the active log file path, or "" when logging to a writer.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		logger.Info("shutting down")
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = nil
	logPath = ""
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning.
func Warn(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error.
func Error(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}
