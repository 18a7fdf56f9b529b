package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/filatei/btorestate/internal/config"
)

// redactedKeys are attributes never written in clear: invite tokens admit a
// user to an estate and bearer tokens authenticate one.
var redactedKeys = map[string]bool{
	"token":         true,
	"invite_token":  true,
	"authorization": true,
	"jwt_secret":    true,
}

// NewLogger builds the process logger on stderr and installs it as the slog
// default.
//
// Format "json" is for production; "text" adds source locations for local
// work. Level is debug, info, warn or error (case-insensitive), default info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text"),
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("app", "btorestate"), slog.String("version", Version))
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] && a.Value.String() != "" {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
