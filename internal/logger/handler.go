package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const tagKey = "tag" // attribute key used for tag filtering

// filteringHandler drops records by tag, package or file before handing
// them to the wrapped handler.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle applies the filters, then passes the record on.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			pkg := filepath.Base(filepath.Dir(frame.File))
			file := filepath.Base(frame.File)
			if !h.cfg.packages.allows(pkg) || !h.cfg.files.allows(file) {
				h.trace("dropped %q from %s/%s", r.Message, pkg, file)
				return nil
			}
		}
	}

	tag := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	switch {
	case tag != "" && !h.cfg.tags.allows(tag):
		h.trace("dropped %q with tag %s", r.Message, tag)
		return nil
	case tag == "" && h.cfg.tags.enabled != nil:
		h.trace("dropped untagged %q", r.Message)
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) trace(format string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}
