package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Init installs the default logger writing to stderr.
func Init() {
	slog.SetDefault(New(os.Stderr, os.Getenv("LOG_LEVEL")))
}

// New builds a text logger for the given LOG_LEVEL value.
func New(w io.Writer, levelName string) *slog.Logger {
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: ParseLevel(levelName),
		}),
	)
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(name string) slog.Level {
	level := slog.LevelError // default: production only shows errors

	switch name {
	case "dev", "development", "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error", "production", "prod":
		level = slog.LevelError
	}
	return level
}

// RedirectToFile points the default logger at path while a full-screen view
// owns the terminal. The returned function restores stderr logging.
func RedirectToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	prev := slog.Default()
	slog.SetDefault(New(f, os.Getenv("LOG_LEVEL")))

	return func() {
		slog.SetDefault(prev)
		f.Close()
	}, nil
}
