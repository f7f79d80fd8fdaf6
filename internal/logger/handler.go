package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag"

// filteringHandler drops records by tag or source package before
// passing them on to the wrapped handler.
type filteringHandler struct {
	base    slog.Handler
	filters *filters
}

func newFilteringHandler(base slog.Handler, f *filters) *filteringHandler {
	return &filteringHandler{base: base, filters: f}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.filters == nil {
		return h.base.Handle(ctx, r)
	}
	if pkg := recordPackage(r); pkg != "" && !h.allowPackage(pkg) {
		return nil
	}
	if !h.allowTag(recordTag(r)) {
		return nil
	}
	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) allowPackage(pkg string) bool {
	pkg = strings.ToLower(pkg)
	if inSet(h.filters.disabledPackages, pkg) {
		return false
	}
	if h.filters.enabledPackages != nil && !inSet(h.filters.enabledPackages, pkg) {
		return false
	}
	return true
}

// allowTag applies tag filters. Untagged records are dropped only when an
// explicit enabled-tags list is configured.
func (h *filteringHandler) allowTag(tag string) bool {
	if tag == "" {
		return h.filters.enabledTags == nil
	}
	if inSet(h.filters.disabledTags, tag) {
		return false
	}
	if h.filters.enabledTags != nil && !inSet(h.filters.enabledTags, tag) {
		return false
	}
	return true
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.filters)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.filters)
}

// recordPackage returns the directory name of the file that produced r.
func recordPackage(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(frame.File))
}

func recordTag(r slog.Record) string {
	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})
	return tag
}
