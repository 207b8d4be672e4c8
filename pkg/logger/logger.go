// Package logger wraps zerolog behind a small structured-field API so the
// rest of the codebase never imports zerolog directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, encoding, and destination.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json or console
	Output     string // stdout, stderr, or a file path
	TimeFormat string // timestamp layout, RFC3339Nano when empty
}

// Logger is a leveled, structured logger.
type Logger struct {
	zl zerolog.Logger
}

// New builds a logger from cfg. A file path as Output appends to that file,
// which keeps log lines off the terminal while the dashboard owns it.
func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339Nano
	}
	zerolog.TimeFieldFormat = timeFormat

	if cfg.Format == "console" {
		sink = zerolog.ConsoleWriter{Out: sink, TimeFormat: timeFormat}
	}

	zl := zerolog.New(sink).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}, nil
}

func openSink(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	}
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, fields ...Field) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { emit(l.zl.Error(), msg, fields) }

func emit(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		f.add(ev)
	}
	ev.Msg(msg)
}

// Field attaches one typed key/value pair to a log event.
type Field struct {
	add func(*zerolog.Event)
}

func String(key, value string) Field {
	return Field{func(e *zerolog.Event) { e.Str(key, value) }}
}

func Int(key string, value int) Field {
	return Field{func(e *zerolog.Event) { e.Int(key, value) }}
}

func Int64(key string, value int64) Field {
	return Field{func(e *zerolog.Event) { e.Int64(key, value) }}
}

func Float64(key string, value float64) Field {
	return Field{func(e *zerolog.Event) { e.Float64(key, value) }}
}

func Bool(key string, value bool) Field {
	return Field{func(e *zerolog.Event) { e.Bool(key, value) }}
}

// Error logs err under the conventional "error" key.
func Error(err error) Field {
	return Field{func(e *zerolog.Event) { e.Err(err) }}
}

// Duration logs value as whole milliseconds.
func Duration(key string, value time.Duration) Field {
	return Field{func(e *zerolog.Event) { e.Int64(key, value.Milliseconds()) }}
}

// Strings logs a comma-joined list.
func Strings(key string, value []string) Field {
	return Field{func(e *zerolog.Event) { e.Str(key, strings.Join(value, ", ")) }}
}

// Any logs value with zerolog's reflection-based encoder.
func Any(key string, value interface{}) Field {
	return Field{func(e *zerolog.Event) { e.Interface(key, value) }}
}
