package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Init opens the configured log file and installs the package logger.
// The returned closer releases the file; it is a no-op for stderr.
func Init(cfg Config) (io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" && cfg.File != "-" {
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory '%s': %w", dir, err)
			}
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file '%s': %w", cfg.File, err)
		}
		out, closer = f, f
	}
	Setup(cfg, out)
	return closer, nil
}

// Setup installs a logger writing to out. Tests use it with a bytes.Buffer.
func Setup(cfg Config, out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.SourceKey:
				if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
					src.File = filepath.Base(src.File)
				}
			case slog.TimeKey:
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	handler := newFilteringHandler(slog.NewTextHandler(out, opts), cfg.filters())
	current.Store(slog.New(handler))
}

// Get returns the installed logger.
func Get() *slog.Logger {
	return current.Load()
}

// logAt builds a record whose source is the caller of the exported wrapper.
func logAt(level slog.Level, tag string, format string, args ...any) {
	l := current.Load()
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // Callers, logAt, wrapper
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(ctx, r)
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) { logAt(slog.LevelDebug, "", format, args...) }

// Infof logs an info message.
func Infof(format string, args ...any) { logAt(slog.LevelInfo, "", format, args...) }

// Warnf logs a warning.
func Warnf(format string, args ...any) { logAt(slog.LevelWarn, "", format, args...) }

// Errorf logs an error.
func Errorf(format string, args ...any) { logAt(slog.LevelError, "", format, args...) }

// DebugTagf logs a debug message carrying a filterable tag.
func DebugTagf(tag, format string, args ...any) { logAt(slog.LevelDebug, tag, format, args...) }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
