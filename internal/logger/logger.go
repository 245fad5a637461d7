// Package logger provides structured logging for oops.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Logger wraps charmbracelet/log.
type Logger struct {
	logger *log.Logger
}

// Config holds logger configuration.
type Config struct {
	Level   string
	File    string
	Console bool
}

// DefaultConfig returns the default logger configuration. The console writer
// is stderr so log lines never mix with suggested commands on stdout.
func DefaultConfig() Config {
	return Config{
		Level:   "warn",
		Console: true,
	}
}

// Initialize initializes the global logger. Only the first call has effect.
func Initialize(cfg Config) error {
	var initErr error
	once.Do(func() {
		initErr = initLogger(cfg)
	})
	return initErr
}

func initLogger(cfg Config) error {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stderr)
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, f)
	}

	var writer io.Writer = io.Discard
	if len(writers) == 1 {
		writer = writers[0]
	} else if len(writers) > 1 {
		writer = io.MultiWriter(writers...)
	}

	l := log.New(writer)
	l.SetLevel(parseLevel(cfg.Level))
	l.SetTimeFormat(time.RFC3339)
	l.SetReportTimestamp(true)

	globalLogger = &Logger{logger: l}
	return nil
}

// Get returns the global logger, initializing defaults if needed.
func Get() *Logger {
	if globalLogger == nil {
		_ = Initialize(DefaultConfig())
	}
	return globalLogger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, keyvals ...any) { l.logger.Debug(msg, keyvals...) }

// Info logs an info message.
func (l *Logger) Info(msg string, keyvals ...any) { l.logger.Info(msg, keyvals...) }

// Warn logs a warning.
func (l *Logger) Warn(msg string, keyvals ...any) { l.logger.Warn(msg, keyvals...) }

// Error logs an error message.
func (l *Logger) Error(msg string, keyvals ...any) { l.logger.Error(msg, keyvals...) }

// With returns a logger scoped with a prefix.
func (l *Logger) With(prefix string) *Logger {
	return &Logger{logger: l.logger.WithPrefix(prefix)}
}

// Package-level convenience functions using the global logger.

func Debug(msg string, keyvals ...any) { Get().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { Get().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Get().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Get().Error(msg, keyvals...) }

// With returns the global logger scoped with a prefix.
func With(prefix string) *Logger { return Get().With(prefix) }

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
