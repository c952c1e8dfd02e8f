// Package logger builds the process-wide slog.Logger.
//
// Usage:
//
//	log := logger.New(cfg.Log)
//	log.Info("server starting", "port", 8080)
//	log.Error("failed to connect", "error", err)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"candlepin/src/infra/config"
)

// New creates a new slog.Logger based on the provided configuration.
// It supports json, text and plain output formats.
func New(cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a new logger that writes to the specified writer.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "plain":
		handler = &plainHandler{level: level, out: &lockedWriter{w: w}}
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts a string log level to slog.Level.
// Defaults to Info if the level is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns a new logger with the request ID added to all log entries.
func WithRequestID(log *slog.Logger, requestID string) *slog.Logger {
	return log.With("request_id", requestID)
}

// WithComponent returns a new logger with a component name added.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	return log.With("component", component)
}

// WithOwner tags entries with the organization they concern.
func WithOwner(log *slog.Logger, ownerKey string) *slog.Logger {
	return log.With("owner", ownerKey)
}

// Info is a convenience wrapper for slog.Logger.Info, guarding nil.
func Info(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Info(msg, args...)
}

// Warn is a convenience wrapper for slog.Logger.Warn, guarding nil.
func Warn(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Warn(msg, args...)
}

// Error is a convenience wrapper for slog.Logger.Error, guarding nil.
func Error(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Error(msg, args...)
}

// Debug is a convenience wrapper for slog.Logger.Debug, guarding nil.
func Debug(log *slog.Logger, msg string, args ...any) {
	if log == nil {
		return
	}
	log.Debug(msg, args...)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) println(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintln(l.w, line)
	return err
}

// plainHandler writes "LEVEL message key=value ..." lines.
type plainHandler struct {
	level slog.Level
	out   *lockedWriter
	attrs []slog.Attr
}

func (h *plainHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= h.level
}

func (h *plainHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	return h.out.println(b.String())
}

func (h *plainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *plainHandler) WithGroup(string) slog.Handler {
	return h
}
