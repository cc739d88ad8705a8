package config

import (
	"io"
	"log/slog"
)

// NewLogger builds a structured logger writing to w. A nil writer yields a
// logger that discards everything.
func NewLogger(cfg LoggingConfig, w io.Writer) *slog.Logger {
	if w == nil {
		return DiscardLogger()
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
