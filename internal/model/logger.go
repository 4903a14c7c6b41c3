package model

//
// Logger
//

import "fmt"

// DebugLogger is a logger emitting only debug messages.
type DebugLogger interface {
	// Debug emits a debug message.
	Debug(msg string)

	// Debugf formats and emits a debug message.
	Debugf(format string, v ...interface{})
}

// InfoLogger is a logger emitting debug and info messages.
type InfoLogger interface {
	// An InfoLogger is also a DebugLogger.
	DebugLogger

	// Info emits an informational message.
	Info(msg string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...interface{})
}

// Logger defines the common interface that a logger should have. It is
// out of the box compatible with `log.Log` in `apex/log`.
type Logger interface {
	// A Logger is also an InfoLogger.
	InfoLogger

	// Warn emits a warning message.
	Warn(msg string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...interface{})
}

// LogLevel is the severity of a message passed to [Logf].
type LogLevel int

const (
	// LogLevelDebug selects [DebugLogger.Debug].
	LogLevelDebug = LogLevel(iota)

	// LogLevelInfo selects [InfoLogger.Info].
	LogLevelInfo

	// LogLevelWarn selects [Logger.Warn].
	LogLevelWarn
)

// String implements fmt.Stringer.
func (lvl LogLevel) String() string {
	switch lvl {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(lvl))
	}
}

// Logf emits a message at the given level using the given logger. Unknown
// levels are emitted as warnings so they are never lost.
func Logf(logger Logger, lvl LogLevel, format string, v ...interface{}) {
	switch lvl {
	case LogLevelDebug:
		logger.Debugf(format, v...)
	case LogLevelInfo:
		logger.Infof(format, v...)
	default:
		logger.Warnf(format, v...)
	}
}

// DiscardLogger is the default logger that discards its input
var DiscardLogger Logger = logDiscarder{}

// logDiscarder is a logger that discards its input
type logDiscarder struct{}

// Debug implements DebugLogger.Debug
func (logDiscarder) Debug(msg string) {}

// Debugf implements DebugLogger.Debugf
func (logDiscarder) Debugf(format string, v ...interface{}) {}

// Info implements InfoLogger.Info
func (logDiscarder) Info(msg string) {}

// Infof implements InfoLogger.Infof
func (logDiscarder) Infof(format string, v ...interface{}) {}

// Warn implements Logger.Warn
func (logDiscarder) Warn(msg string) {}

// Warnf implements Logger.Warnf
func (logDiscarder) Warnf(format string, v ...interface{}) {}

// ErrorToStringOrOK emits "ok" on "<nil>"" values for success.
func ErrorToStringOrOK(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
