// Package logging provides leveled, structured logging for autotype.
//
// Loggers are cheap value wrappers around zerolog. Derived loggers created
// with WithField or WithComponent share the parent's output and level.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Level is the minimum severity a logger emits.
type Level = zerolog.Level

// Supported levels.
const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

// Format selects the output encoding.
type Format string

const (
	// FormatText writes human readable lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// ParseLevel parses a level name. Names are case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Format is the encoding. Defaults to FormatText.
	Format Format
	// Prefix is attached to every entry as the "app" field.
	Prefix string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Format: FormatText,
		Prefix: "autotype",
	}
}

// Logger is a leveled logger.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: "2006-01-02T15:04:05.000",
		}
	}

	ctx := zerolog.New(out).Level(cfg.Level).With().Timestamp()
	if cfg.Prefix != "" {
		ctx = ctx.Str("app", cfg.Prefix)
	}
	return &Logger{zl: ctx.Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithField returns a logger with key=value attached to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Level returns the minimum level of the logger.
func (l *Logger) Level() Level {
	return l.zl.GetLevel()
}

// Debug logs a debug message. Args are applied with fmt.Sprintf.
func (l *Logger) Debug(msg string, args ...any) {
	write(l.zl.Debug(), msg, args)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	write(l.zl.Info(), msg, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	write(l.zl.Warn(), msg, args)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	write(l.zl.Error(), msg, args)
}

// Err logs err at error level with msg as context.
func (l *Logger) Err(err error, msg string) {
	if err == nil {
		return
	}
	l.zl.Error().Err(err).Msg(msg)
}

func write(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	if len(args) > 0 {
		e.Msgf(msg, args...)
		return
	}
	e.Msg(msg)
}
