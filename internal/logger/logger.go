package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// AppLogger handles application logging to the console
type AppLogger struct {
	mu    sync.Mutex
	out   io.Writer
	debug bool
	now   func() time.Time
}

// NewAppLogger creates a new logger instance. A nil writer logs to stderr.
func NewAppLogger(out io.Writer, debug bool) *AppLogger {
	if out == nil {
		out = os.Stderr
	}
	return &AppLogger{
		out:   out,
		debug: debug,
		now:   time.Now,
	}
}

// Discard returns a logger that writes nothing
func Discard() *AppLogger {
	return NewAppLogger(io.Discard, true)
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Warn logs a recoverable problem
func (l *AppLogger) Warn(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// Debug logs a debug message. It is written only when debug is enabled.
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[DEBUG] [%s] %s\n", l.now().Format("15:04:05"), msg)
}

// log handles the formatting
func (l *AppLogger) log(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	formattedMsg := fmt.Sprintf("[%s] %s: %s", l.now().Format("15:04:05"), level, msg)
	fmt.Fprintln(l.out, formattedMsg)
}
