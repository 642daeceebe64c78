// Package log provides a simple wrapper around the standard log package
// with support for different log levels (ERROR, WARN, INFO, DEBUG)
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level uint8

const (
	Silent Level = iota
	Error
	Warn
	Info
	Debug
)

var levelNames = [...]string{
	Silent: "silent",
	Error:  "error",
	Warn:   "warn",
	Info:   "info",
	Debug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", l)
}

// ParseLevel maps a level name to its Level
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}
	return Info, fmt.Errorf("unknown log level: %s", name)
}

// NewLogger creates a new logger instance writing to stderr
func NewLogger(level Level) *Logger {
	return NewLoggerWithWriter(os.Stderr, level)
}

// NewLoggerWithWriter creates a new logger instance writing to w
func NewLoggerWithWriter(w io.Writer, level Level) *Logger {
	l := &Logger{
		logger: log.New(w, "jsonagent: ", log.LstdFlags),
	}
	l.level.Store(uint32(level))
	return l
}

// Logger wraps the standard logger with additional log level functionality
type Logger struct {
	// level may be changed while other goroutines log
	level atomic.Uint32
	// logger is the underlying standard logger instance
	logger *log.Logger
}

// Level returns the current level
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the level for subsequent messages
func (l *Logger) SetLevel(level Level) {
	l.level.Store(uint32(level))
}

func (l *Logger) enabled(level Level) bool {
	return l.Level() >= level
}

// Errorf logs a message at ERROR level using printf style formatting
func (l *Logger) Errorf(format string, args ...any) {
	if !l.enabled(Error) {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}

// Warnf logs a message at WARN level using printf style formatting
func (l *Logger) Warnf(format string, args ...any) {
	if !l.enabled(Warn) {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Infof logs a message at INFO level using printf style formatting
func (l *Logger) Infof(format string, args ...any) {
	if !l.enabled(Info) {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Debugf logs a message at DEBUG level using printf style formatting
func (l *Logger) Debugf(format string, args ...any) {
	if !l.enabled(Debug) {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}
