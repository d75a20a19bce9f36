// Package logging provides the diagnostic logger and the session log.
//
// Two distinct concerns live here. The Logger writes leveled,
// optionally structured output to stderr; the --verbose flag drops its
// level to debug and attaches the trace transport in http.go so
// request and response bodies (credentials redacted) show up in the
// diagnostic stream. The SessionLogger in session.go is separate: an
// append-only, best-effort event trail written to a file in the
// working directory, which never surfaces its own failures.
//
// # Usage
//
//	logger := logging.New(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	    Output: os.Stderr,
//	})
//
//	logger.Debug("sending request", logging.Fields{
//	    "url":   url,
//	    "model": cfg.Model,
//	})
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level orders log entries by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables the logger entirely
	LevelNone
)

// String returns the level tag used in log output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Format selects the output encoding.
type Format int

const (
	// FormatText writes one human-readable line per entry, in the same
	// "timestamp [LEVEL] message" shape as the session log
	FormatText Format = iota
	// FormatJSON writes one JSON document per line
	FormatJSON
)

// Fields carries structured key/value context for one entry.
type Fields map[string]interface{}

// entry is the serialized form of one log event.
type entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Fields    Fields    `json:"fields,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Options configures a Logger. A nil Output defaults to stderr.
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger writes leveled diagnostic output. Safe for use from the trace
// transport while the main flow logs concurrently.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
}

// DefaultLogger is the process-wide logger. cmd lowers its level to
// debug when --verbose is set.
var DefaultLogger = New(Options{
	Level:  LevelInfo,
	Format: FormatText,
	Output: os.Stderr,
})

// New creates a Logger with the given options.
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Logger{
		level:  opts.Level,
		format: opts.Format,
		output: opts.Output,
	}
}

// SetLevel changes the minimum level that produces output.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(LevelDebug, msg, nil, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(LevelInfo, msg, nil, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(LevelWarn, msg, nil, fields...)
}

// Error logs an error message with its cause.
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields...)
}

func (l *Logger) log(level Level, msg string, err error, fields ...Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   msg,
	}
	if merged := mergeFields(fields); len(merged) > 0 {
		e.Fields = merged
	}
	if err != nil {
		e.Error = err.Error()
	}

	if l.format == FormatJSON {
		fmt.Fprintln(l.output, formatJSON(e))
	} else {
		fmt.Fprintln(l.output, formatText(e))
	}
}

// mergeFields flattens the variadic field maps, later maps winning on
// key collisions.
func mergeFields(fields []Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

func formatJSON(e entry) string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %s"}`, err.Error())
	}
	return string(data)
}

// formatText renders "timestamp [LEVEL] message key=value ...". Field
// keys are sorted so repeated runs produce comparable output.
func formatText(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Level, e.Message)

	if e.Error != "" {
		fmt.Fprintf(&b, " error=%q", e.Error)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}

	return b.String()
}

// WithFields creates a child logger that attaches fields to every
// entry it writes.
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{logger: l, fields: fields}
}

// FieldLogger is a Logger bound to a preset field set.
type FieldLogger struct {
	logger *Logger
	fields Fields
}

// Debug logs a debug message with the preset fields.
func (fl *FieldLogger) Debug(msg string, fields ...Fields) {
	fl.logger.Debug(msg, fl.merge(fields)...)
}

// Info logs an info message with the preset fields.
func (fl *FieldLogger) Info(msg string, fields ...Fields) {
	fl.logger.Info(msg, fl.merge(fields)...)
}

// Warn logs a warning message with the preset fields.
func (fl *FieldLogger) Warn(msg string, fields ...Fields) {
	fl.logger.Warn(msg, fl.merge(fields)...)
}

// Error logs an error message with the preset fields.
func (fl *FieldLogger) Error(msg string, err error, fields ...Fields) {
	fl.logger.Error(msg, err, fl.merge(fields)...)
}

func (fl *FieldLogger) merge(fields []Fields) []Fields {
	result := make([]Fields, 0, len(fields)+1)
	result = append(result, fl.fields)
	return append(result, fields...)
}

// Package-level convenience functions using DefaultLogger.

// Debug logs a debug message on the default logger.
func Debug(msg string, fields ...Fields) {
	DefaultLogger.Debug(msg, fields...)
}

// Info logs an info message on the default logger.
func Info(msg string, fields ...Fields) {
	DefaultLogger.Info(msg, fields...)
}

// Warn logs a warning message on the default logger.
func Warn(msg string, fields ...Fields) {
	DefaultLogger.Warn(msg, fields...)
}

// Error logs an error message on the default logger.
func Error(msg string, err error, fields ...Fields) {
	DefaultLogger.Error(msg, err, fields...)
}

// SetLevel sets the level of the default logger.
func SetLevel(level Level) {
	DefaultLogger.SetLevel(level)
}
