package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceOnLevels decorates a handler so source location is attached only for
// the listed levels. The wrapped handler must be built with AddSource
// disabled; the decorator resolves the caller from the record's PC.
type sourceOnLevels struct {
	inner  slog.Handler
	levels map[slog.Level]bool
}

func withSourceOnLevels(inner slog.Handler, levels ...slog.Level) slog.Handler {
	set := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		set[level] = true
	}
	return &sourceOnLevels{inner: inner, levels: set}
}

func (h *sourceOnLevels) Handle(ctx context.Context, r slog.Record) error {
	if h.levels[r.Level] && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}),
		})
	}
	return h.inner.Handle(ctx, r)
}

func (h *sourceOnLevels) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceOnLevels{inner: h.inner.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceOnLevels) WithGroup(name string) slog.Handler {
	return &sourceOnLevels{inner: h.inner.WithGroup(name), levels: h.levels}
}

func (h *sourceOnLevels) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}
