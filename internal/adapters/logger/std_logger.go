// Package logger adapts github.com/baditaflorin/l to ports.Logger and holds
// the two logging profiles the binaries use.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/baditaflorin/go_flames/internal/ports"
	"github.com/baditaflorin/l"
)

// ConsoleConfig writes plain text synchronously to w, dropping records below
// minLevel. Short-lived tools use it so nothing is left in a buffer at exit.
func ConsoleConfig(w io.Writer, minLevel slog.Level) l.Config {
	return l.Config{
		Output:     keepOpen(w),
		MinLevel:   minLevel,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  minLevel <= slog.LevelDebug,
	}
}

// ServiceConfig writes buffered records to w for long-running servers.
func ServiceConfig(w io.Writer, jsonFormat bool) l.Config {
	return l.Config{
		Output:      keepOpen(w),
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
}

// keepOpen hides Close on the standard streams. l closes its output when the
// logger is closed, and stdout or stderr must outlive the logger.
func keepOpen(w io.Writer) io.Writer {
	if w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr) {
		return struct{ io.Writer }{w}
	}
	return w
}

// New creates an l.Logger from config.
func New(config l.Config) (l.Logger, error) {
	lg, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}

// StdLogger adapts an l.Logger to ports.Logger.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger returns the fallback logger: info and above, as text on stderr,
// so stdout stays free for command output.
func NewStdLogger() (ports.Logger, error) {
	return NewCustomStdLogger(ConsoleConfig(os.Stderr, slog.LevelInfo))
}

// NewCustomStdLogger creates an adapter around a logger built from config.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	lg, err := New(config)
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: lg}, nil
}

// FromExisting adapts lg. Optional key/value pairs are attached to every
// record, e.g. FromExisting(lg, "component", "http").
func FromExisting(lg l.Logger, keysAndValues ...interface{}) ports.Logger {
	if len(keysAndValues) > 0 {
		lg = lg.With(keysAndValues...)
	}
	return &StdLogger{logger: lg}
}

func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}
