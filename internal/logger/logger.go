// Package logger is the logging surface shared by the planners, the
// maintenance planner and the frontier benchmark.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger is implemented by every log destination in this package.
// Implementations are safe for concurrent use when their writer is.
type Logger interface {
	// Type returns the kind of destination
	Type() LoggerType
	// Printf logs a formatted message
	Printf(format string, args ...any)
	// Println logs a message with a newline
	Println(message string)
	// Close releases the destination
	Close() error
}

type LoggerType string

const (
	LoggerTypeStdout LoggerType = "stdout"
	LoggerTypeWriter LoggerType = "writer"
	LoggerTypeNoop   LoggerType = "noop"
	LoggerTypeMulti  LoggerType = "multi"
)

// WriterLogger adapts any io.Writer to the Logger interface.
type WriterLogger struct {
	logger *log.Logger
	kind   LoggerType
}

var _ Logger = (*WriterLogger)(nil)

// NewWriterLogger creates a logger from any io.Writer. flags are the
// log package's flags (log.LstdFlags, log.Lshortfile, ...).
func NewWriterLogger(w io.Writer, flags int) *WriterLogger {
	return &WriterLogger{logger: log.New(w, "", flags), kind: LoggerTypeWriter}
}

// NewStdoutLogger creates a timestamped logger on stdout.
func NewStdoutLogger() *WriterLogger {
	return &WriterLogger{logger: log.New(os.Stdout, "", log.LstdFlags), kind: LoggerTypeStdout}
}

func (w *WriterLogger) Type() LoggerType { return w.kind }

func (w *WriterLogger) Printf(format string, args ...any) {
	w.logger.Printf(format, args...)
}

func (w *WriterLogger) Println(message string) {
	w.logger.Println(message)
}

func (w *WriterLogger) Close() error { return nil }

// NoopLogger discards all log messages.
type NoopLogger struct{}

var _ Logger = NoopLogger{}

func NewNoopLogger() NoopLogger { return NoopLogger{} }

func (NoopLogger) Type() LoggerType { return LoggerTypeNoop }
func (NoopLogger) Printf(format string, args ...any) {}
func (NoopLogger) Println(message string) {}
func (NoopLogger) Close() error { return nil }

// MultiLogger writes to several loggers.
type MultiLogger struct {
	loggers []Logger
}

var _ Logger = (*MultiLogger)(nil)

func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Type() LoggerType { return LoggerTypeMulti }

func (m *MultiLogger) Printf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Printf(format, args...)
	}
}

func (m *MultiLogger) Println(message string) {
	for _, l := range m.loggers {
		l.Println(message)
	}
}

// Close closes every logger and returns the first error.
func (m *MultiLogger) Close() error {
	var first error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}
