package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
)

// NewSlogLogger builds the process logger and installs it as the slog default.
func NewSlogLogger(cfg config.Log) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Output == config.LogOutputStderr {
		w = os.Stderr
	}

	logger := slog.New(newHandler(w, cfg))
	slog.SetDefault(logger)

	return logger
}

func newHandler(w io.Writer, cfg config.Log) slog.Handler {
	if cfg.Format == config.LogFormatText {
		return catalogHandler{next: tint.NewHandler(w, &tint.Options{
			Level:       cfg.Level,
			AddSource:   cfg.AddSource,
			TimeFormat:  time.RFC3339,
			ReplaceAttr: highlightErrors,
		})}
	}

	return catalogHandler{next: slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	})}
}

// highlightErrors colors error attributes red in text output.
func highlightErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	if _, ok := a.Value.Any().(error); ok {
		return tint.Attr(9, a)
	}
	return a
}
