package logger

import (
	"fmt"
	"log"
	"os"

	"narrative-observer/src/models"
)

// -----------------------------------------------------------------------------

// Severity ordering for level filtering.
const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
)

var levelNames = map[string]int{
	"DEBUG":   levelDebug,
	"INFO":    levelInfo,
	"WARNING": levelWarning,
	"ERROR":   levelError,
}

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality. Messages below the
// configured log_level are dropped.
type Logger struct {
	name   string
	logger *log.Logger
	level  int
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. config may be a *models.MConfig
// carrying a log_level, or nil for the default INFO threshold.
func NewLogger(config interface{}, name string) *Logger {
	level := levelInfo
	if cfg, ok := config.(*models.MConfig); ok && cfg != nil {
		if v, ok := levelNames[cfg.LogLevel]; ok {
			level = v
		}
	}

	return &Logger{
		name:   name,
		logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  level,
	}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level > levelDebug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] DEBUG: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level > levelInfo {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] INFO: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	if l.level > levelWarning {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] WARNING: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] ERROR: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] CRITICAL: %s", l.name, msg)
	os.Exit(1)
}
