// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log wraps go-ethereum's slog based logger with a root handler that
// can be replaced at any time. Loggers created by WithContext, including
// package level ones, follow the replacement.
package log

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger is the go-ethereum logger interface.
type Logger = ethlog.Logger

// Levels.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

var (
	current atomic.Pointer[slog.Handler]
	root    = ethlog.NewLogger(&handler{})
)

func init() {
	SetDefault(ethlog.DiscardHandler())
}

// SetDefault replaces the root handler. Nothing is logged until it's called.
func SetDefault(h slog.Handler) {
	current.Store(&h)
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

// NewTerminalHandler returns a human readable handler, coloured when useColor is set.
func NewTerminalHandler(w io.Writer, level slog.Level, useColor bool) slog.Handler {
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// NewJSONHandler returns a handler printing one JSON object per record.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return ethlog.JSONHandlerWithLevel(w, level)
}

// FromVerbosity maps the 0 (crit) to 5 (trace) verbosity scale to a level.
func FromVerbosity(v int) slog.Level {
	return ethlog.FromLegacyLevel(v)
}

// handler forwards to the current root handler, replaying the attrs and
// groups it was derived with.
type handler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *handler) resolve() slog.Handler {
	inner := *current.Load()
	for _, op := range h.ops {
		inner = op(inner)
	}
	return inner
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*current.Load()).Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	return h.resolve().Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{append(slices.Clip(h.ops), func(inner slog.Handler) slog.Handler {
		return inner.WithAttrs(attrs)
	})}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{append(slices.Clip(h.ops), func(inner slog.Handler) slog.Handler {
		return inner.WithGroup(name)
	})}
}
