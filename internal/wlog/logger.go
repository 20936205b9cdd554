// Package wlog provides the structured logging used across the webdriver
// core: the matcher, the decoder, the dispatcher, and the HTTP front end.
//
// It wraps [log/slog] with the same constructor pattern as the rest of the
// module: New returns a [*Logger] and an error only for genuinely invalid
// configuration (a nil output writer), MustNew panics on the same.
//
// A nil *Logger is valid and discards everything; callers that don't care
// about logging can pass one through without a nil check at every call site.
package wlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// HandlerType selects the slog handler backing a Logger.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs (default).
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
)

// Level aliases slog.Level so callers don't need to import log/slog directly.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ErrNilOutput is returned by New when WithOutput(nil) was applied.
var ErrNilOutput = errors.New("wlog: output writer cannot be nil")

// Logger is a thin, nil-safe wrapper around *slog.Logger.
type Logger struct {
	slog *slog.Logger
}

// Option configures a Logger at construction time.
type Option func(*config)

type config struct {
	handlerType HandlerType
	output      io.Writer
	level       Level
	addSource   bool
	component   string
}

// WithHandlerType selects the handler (default [JSONHandler]).
func WithHandlerType(t HandlerType) Option {
	return func(c *config) { c.handlerType = t }
}

// WithOutput sets the destination writer (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithLevel sets the minimum level logged (default [LevelInfo]).
func WithLevel(l Level) Option {
	return func(c *config) { c.level = l }
}

// WithSource enables source file:line annotations.
func WithSource(enabled bool) Option {
	return func(c *config) { c.addSource = enabled }
}

// WithComponent tags every record with a "component" attribute, e.g.
// "dispatcher" or "matcher".
func WithComponent(name string) Option {
	return func(c *config) { c.component = name }
}

// New builds a Logger from opts. The only failure mode is a nil output
// writer, construction otherwise cannot fail.
func New(opts ...Option) (*Logger, error) {
	cfg := &config{
		handlerType: JSONHandler,
		output:      os.Stderr,
		level:       LevelInfo,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.output == nil {
		return nil, ErrNilOutput
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.addSource}
	var h slog.Handler
	switch cfg.handlerType {
	case TextHandler:
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	l := slog.New(h)
	if cfg.component != "" {
		l = l.With("component", cfg.component)
	}
	return &Logger{slog: l}, nil
}

// MustNew is New, panicking on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("wlog: " + err.Error())
	}
	return l
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a child Logger with the given attributes attached to every
// subsequent record.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{slog: l.slog.With(args...)}
}

func (l *Logger) log(ctx context.Context, level Level, msg string, args ...any) {
	if l == nil || l.slog == nil {
		return
	}
	l.slog.Log(ctx, level, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(context.Background(), LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(context.Background(), LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), LevelError, msg, args...) }
