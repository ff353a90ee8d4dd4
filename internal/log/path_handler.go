package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// PathHandler wraps an slog.Handler and shortens file paths. String
// attribute values that are absolute paths inside the base directory are
// replaced by the path relative to it. Paths outside the base directory
// are left untouched.
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// base is the cleaned absolute base directory. Empty disables rewriting.
	base string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// If handler is nil, the returned PathHandler will use slog.Default().Handler().
// A base that cannot be made absolute disables rewriting.
func NewPathHandler(handler slog.Handler, base string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if base != "" {
		abs, err := filepath.Abs(base)
		if err != nil {
			abs = ""
		}
		base = abs
	}
	return &PathHandler{handler: handler, base: base}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), base: h.base}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), base: h.base}
}

// rewriteAttr shortens a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() == slog.KindString {
		if rel, ok := h.relative(a.Value.String()); ok {
			return slog.String(a.Key, rel)
		}
	}
	return a
}

// relative returns p relative to the base directory when p lies inside it.
func (h *PathHandler) relative(p string) (string, bool) {
	if h.base == "" || !filepath.IsAbs(p) {
		return "", false
	}
	rel, err := filepath.Rel(h.base, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// NewLogger creates a new text slog.Logger that shortens paths below base.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - base: The directory paths are made relative to; empty disables rewriting
func NewLogger(w io.Writer, verbose bool, base string) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewTextHandler(w, handlerOptions(verbose)), base))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON format and
// shortens paths below base. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool, base string) *slog.Logger {
	return slog.New(NewPathHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), base))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
