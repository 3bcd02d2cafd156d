package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultDirectory = "./logs"

// Config captures the settings of the gateway logger.
type Config struct {
	// Level is the textual level (trace, debug, info, warn, error).
	Level string
	// Format selects the slog handler (json or text).
	Format string
	// AddSource toggles slog's source attribution.
	AddSource bool
	// Directory receives one log file per UTC day. Empty means ./logs.
	Directory string
}

// ParseLevel converts textual levels into slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "dbg":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	case "trace":
		return slog.LevelDebug - 2
	default:
		return slog.LevelInfo
	}
}

// New builds a slog.Logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// DailyFileName returns the log file path for the UTC day of now.
func DailyFileName(dir string, now time.Time) string {
	if strings.TrimSpace(dir) == "" {
		dir = defaultDirectory
	}
	return filepath.Join(dir, now.UTC().Format("2006-01-02")+".log")
}

// Setup tees stdout and the daily file of cfg.Directory into a new logger, and points the
// standard log package (used by echo) at the same writer. The caller closes the file.
func Setup(cfg Config, now time.Time) (*os.File, *slog.Logger, error) {
	fileName := DailyFileName(cfg.Directory, now)
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")
	return file, New(writer, cfg), nil
}
