package observability

import (
	"log/slog"
	"os"

	"github.com/adpilot/admanager/internal/config/configs"
)

// NewLogger builds the process logger from config. Output is wrapped in a
// TraceHandler so log lines carry trace ids when a span is active.
func NewLogger(cfg configs.Logger) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	switch cfg.SlogFormat() {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(NewTraceHandler(handler))
}
