package configs

import (
	"log/slog"
	"strings"
)

// Logger configures the structured logger. Level is one of debug, info,
// warn, error; Format is "text" or "json". Unknown values fall back to
// info/text.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// SlogLevel converts the textual level into a slog.Level.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogFormat normalises the requested output encoding.
func (c Logger) SlogFormat() string {
	if strings.ToLower(c.Format) == "text" {
		return "text"
	}
	return "json"
}
