package log

import "github.com/mazrean/jsonagent/internal/pkg/log"

// Logger defines the interface for logging operations used throughout the agent
// It provides methods for different log levels: debug, info, warn and error
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Level is a logging threshold; higher levels log more.
type Level = log.Level

const (
	Silent = log.Silent
	Error  = log.Error
	Warn   = log.Warn
	Info   = log.Info
	Debug  = log.Debug
)

// LevelLogger is a Logger whose level can be read and changed at run time.
type LevelLogger interface {
	Logger
	Level() Level
	SetLevel(Level)
}

// New creates a stderr logger at the given level.
func New(level Level) LevelLogger {
	return log.NewLogger(level)
}

var DefaultLogger Logger = log.NewLogger(log.Info) // DefaultLogger is the default logger instance
