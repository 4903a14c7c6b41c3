package testingx

import (
	"fmt"
	"sync"

	"github.com/endpointkit/endpoint/internal/model"
)

// Logger implements model.Logger and collects all the emitted logs.
//
// The zero value is ready to use. It is safe to use this struct
// from multiple goroutines.
type Logger struct {
	debug []string
	info  []string
	warn  []string
	mu    sync.Mutex
}

var _ model.Logger = &Logger{}

// Debug implements model.Logger.
func (l *Logger) Debug(message string) {
	l.mu.Lock()
	l.debug = append(l.debug, message)
	l.mu.Unlock()
}

// Debugf implements model.Logger.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.Debug(fmt.Sprintf(format, v...))
}

// Info implements model.Logger.
func (l *Logger) Info(message string) {
	l.mu.Lock()
	l.info = append(l.info, message)
	l.mu.Unlock()
}

// Infof implements model.Logger.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.Info(fmt.Sprintf(format, v...))
}

// Warn implements model.Logger.
func (l *Logger) Warn(message string) {
	l.mu.Lock()
	l.warn = append(l.warn, message)
	l.mu.Unlock()
}

// Warnf implements model.Logger.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.Warn(fmt.Sprintf(format, v...))
}

// DebugLines returns a copy of the debug lines.
func (l *Logger) DebugLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.debug...)
}

// InfoLines returns a copy of the info lines.
func (l *Logger) InfoLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.info...)
}

// WarnLines returns a copy of the warning lines.
func (l *Logger) WarnLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.warn...)
}

// ClearAll removes all the collected lines.
func (l *Logger) ClearAll() {
	l.mu.Lock()
	l.debug = nil
	l.info = nil
	l.warn = nil
	l.mu.Unlock()
}
