// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger emits structured key/value log records.
type Logger interface {
	With(ctx ...any) Logger

	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the handler backing all loggers created by this package.
// Records are discarded until the host installs a handler.
func SetDefault(handler slog.Handler) {
	root.Store(&logger{slog.New(handler)})
}

// New creates a logger writing through the given handler.
func New(handler slog.Handler) Logger {
	return &logger{slog.New(handler)}
}

// WithContext returns a logger carrying the given context key/value pairs.
// It follows handler changes made by SetDefault, so it is safe to create in
// package variable initializers.
func WithContext(ctx ...any) Logger {
	return &rootLogger{ctx: ctx}
}

// rootLogger resolves the backing handler on every call instead of at
// creation time.
type rootLogger struct {
	ctx []any
}

func (l *rootLogger) resolve() *slog.Logger {
	return root.Load().inner.With(l.ctx...)
}

func (l *rootLogger) With(ctx ...any) Logger {
	return &rootLogger{ctx: append(append([]any{}, l.ctx...), ctx...)}
}

func (l *rootLogger) Debug(msg string, ctx ...any) { l.resolve().Debug(msg, ctx...) }
func (l *rootLogger) Info(msg string, ctx ...any)  { l.resolve().Info(msg, ctx...) }
func (l *rootLogger) Warn(msg string, ctx ...any)  { l.resolve().Warn(msg, ctx...) }
func (l *rootLogger) Error(msg string, ctx ...any) { l.resolve().Error(msg, ctx...) }

// TerminalHandler returns a text handler writing to stderr at the given level.
func TerminalHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(_ string) slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &discardHandler{}
}
