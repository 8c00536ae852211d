package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger provides component-scoped structured logging with verbose support.
// Debug and Info are only written when the verbose callback reports true;
// Warn and Error are always written.
type Logger struct {
	component string
	verbose   func() bool
	out       *syncWriter
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// syncWriter serializes writes from loggers sharing one output
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Nowhere left to report a failing log sink
	_, _ = io.WriteString(s.w, line)
}

// New creates a logger writing to stderr
func New(component string, verbose func() bool) *Logger {
	return NewWithWriter(component, verbose, os.Stderr)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(component string, verbose func() bool, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		component: component,
		verbose:   verbose,
		out:       &syncWriter{w: w},
	}
}

// Nop returns a logger that writes nothing
func Nop() *Logger {
	return NewWithWriter("", nil, io.Discard)
}

// WithComponent creates a logger with a specific component name sharing
// this logger's output and verbosity
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		verbose:   l.verbose,
		out:       l.out,
	}
}

// IsVerbose reports whether debug output is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose != nil && l.verbose()
}

// Debug logs debug messages (only when verbose)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.IsVerbose() {
		l.log("DEBUG", msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.IsVerbose() {
		l.log("INFO", msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log("WARN", msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log("ERROR", msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.IsVerbose() {
		l.log("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.IsVerbose() {
		l.log("INFO", msg, fields, args...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log("WARN", msg, fields, args...)
}

// log formats and writes one line: [time] LEVEL [component] msg [k=v ...]
func (l *Logger) log(level, msg string, fields []Field, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	var fieldsStr string
	if len(fields) > 0 {
		fieldStrings := make([]string, 0, len(fields))
		for _, field := range fields {
			fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(fieldStrings, " "))
	}

	l.out.write(fmt.Sprintf("[%s] %s [%s] %s%s\n", timestamp, level, component, formattedMsg, fieldsStr))
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Seq(seq uint64) Field {
	return Field{Key: "seq", Value: seq}
}

func RequestID(id string) Field {
	return Field{Key: "request_id", Value: id}
}
