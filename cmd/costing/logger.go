package main

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// errorMirror передаёт записи в base, а записи от уровня min ещё и в mirror.
// Сбой зеркала не мешает основной записи.
type errorMirror struct {
	base   slog.Handler
	mirror slog.Handler
	min    slog.Level
}

func (h *errorMirror) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.base.Enabled(ctx, lvl) || lvl >= h.min
}

func (h *errorMirror) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.min {
		_ = h.mirror.Handle(ctx, r.Clone())
	}
	if !h.base.Enabled(ctx, r.Level) {
		return nil
	}
	return h.base.Handle(ctx, r)
}

func (h *errorMirror) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorMirror{base: h.base.WithAttrs(attrs), mirror: h.mirror.WithAttrs(attrs), min: h.min}
}

func (h *errorMirror) WithGroup(name string) slog.Handler {
	return &errorMirror{base: h.base.WithGroup(name), mirror: h.mirror.WithGroup(name), min: h.min}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogger пишет в stdout по env и дублирует ошибки в errorLogPath.
// Возвращённый Closer закрывает файл ошибок.
func setupLogger(env, errorLogPath string) (*slog.Logger, io.Closer) {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if env == envDev {
		base = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		base = slog.NewTextHandler(os.Stdout, opts)
	}

	if errorLogPath == "" {
		return slog.New(base), nopCloser{}
	}

	errorFile, err := os.OpenFile(errorLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log := slog.New(base)
		log.Warn("cannot open error log file, errors go to stdout only", slog.String("path", errorLogPath), slog.String("error", err.Error()))
		return log, nopCloser{}
	}

	return slog.New(newErrorMirror(base, errorFile)), errorFile
}

func newErrorMirror(base slog.Handler, w io.Writer) slog.Handler {
	return &errorMirror{
		base:   base,
		mirror: slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelError}),
		min:    slog.LevelError,
	}
}
