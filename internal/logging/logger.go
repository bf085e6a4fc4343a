// Package logging provides structured logging for both GUI and CLI modes.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout used by the console writer
const TimeFormat = "15:04:05"

// Logger wraps zerolog with a console writer.
type Logger struct {
	zlog   zerolog.Logger
	output io.Writer
}

// New creates a logger writing to w at the given level ("debug", "info",
// "warn", "error"). A nil writer means stderr.
func New(level string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: TimeFormat,
	}

	logger := zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{zlog: logger, output: output}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), output: io.Discard}
}

// ParseLevel converts a config value to a zerolog level. Unknown values
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		zlog:   l.zlog.With().Str("component", name).Logger(),
		output: l.output,
	}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Level returns the configured minimum level.
func (l *Logger) Level() zerolog.Level {
	return l.zlog.GetLevel()
}

// Output returns the current output writer.
func (l *Logger) Output() io.Writer {
	return l.output
}

// SetOutput redirects the logger, e.g. above mpb progress bars.
func (l *Logger) SetOutput(w io.Writer) {
	level := l.zlog.GetLevel()
	l.output = zerolog.ConsoleWriter{Out: w, TimeFormat: TimeFormat}
	l.zlog = zerolog.New(l.output).Level(level).With().Timestamp().Logger()
}
